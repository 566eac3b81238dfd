package http

import (
	"net/http"

	"conti/internal/core"
)

type cardRequest struct {
	Name       string `json:"name"`
	ClosingDay int    `json:"closing_day"`
	DueDay     int    `json:"due_day"`
}

func (r cardRequest) toCard(id int64) core.Card {
	return core.Card{
		ID:   id,
		Name: sanitizeInput(r.Name),
		Billing: core.CardBillingConfig{
			ClosingDay: r.ClosingDay,
			DueDay:     r.DueDay,
		},
	}
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	card := req.toCard(0)
	if err := card.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	id, err := s.store.CreateCard(r.Context(), card)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	card, err := s.store.GetCard(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, viewCard(card))
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.store.ListCards(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	views := make([]cardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, viewCard(c))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	card := req.toCard(id)
	if err := card.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.UpdateCard(r.Context(), card); err != nil {
		respondError(w, r, err)
		return
	}
	// Billing changes move period boundaries; cached invoices are stale.
	s.invoiceCache.Delete(invoiceCacheKey(id))
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.DeleteCard(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	s.invoiceCache.Delete(invoiceCacheKey(id))
	respondJSON(w, http.StatusNoContent, nil)
}
