package http

import (
	"fmt"
	"net/http"
	"time"

	"conti/internal/core"
)

type createTransactionRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary,omitempty"`
	CardID      int64  `json:"card_id,omitempty"`
	PersonID    int64  `json:"person_id,omitempty"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, r, badRequest("invalid date %q, want YYYY-MM-DD", req.Date))
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		respondError(w, r, badRequest("invalid amount %q", req.Amount))
		return
	}

	tx := core.Transaction{
		Date:        core.DateOf(date),
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: cents},
		Primary:     sanitizeInput(req.Primary),
		Secondary:   sanitizeInput(req.Secondary),
		CardID:      req.CardID,
		PersonID:    req.PersonID,
	}

	id, err := s.transactions.CreateTransaction(r.Context(), tx)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// The month summary and any cached invoice of this card changed.
	s.overviewCache.Delete(overviewCacheKey(tx.Date.Year(), tx.Date.Month()))
	if tx.CardID != 0 {
		s.invoiceCache.Delete(invoiceCacheKey(tx.CardID))
	}

	respondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	tx, err := s.transactions.DeleteTransaction(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// The removed amount changes the same views a create does.
	s.overviewCache.Delete(overviewCacheKey(tx.Date.Year(), tx.Date.Month()))
	if tx.CardID != 0 {
		s.invoiceCache.Delete(invoiceCacheKey(tx.CardID))
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func overviewCacheKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func invoiceCacheKey(cardID int64) string {
	return fmt.Sprintf("card-%d", cardID)
}
