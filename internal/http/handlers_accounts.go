package http

import (
	"net/http"

	"conti/internal/core"
)

type createAccountRequest struct {
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	BalanceCents int64  `json:"balance_cents"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	account := core.Account{
		Name:    sanitizeInput(req.Name),
		Kind:    core.AccountKind(req.Kind),
		Balance: core.Money{Cents: req.BalanceCents},
	}
	if err := account.Validate(); err != nil {
		respondError(w, r, badRequest("invalid account: %v", err))
		return
	}

	id, err := s.store.CreateAccount(r.Context(), account)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	account, err := s.store.GetAccount(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, viewAccount(account))
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, viewAccount(a))
	}
	respondJSON(w, http.StatusOK, views)
}

type updateBalanceRequest struct {
	BalanceCents int64 `json:"balance_cents"`
}

func (s *Server) handleUpdateAccountBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req updateBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.UpdateAccountBalance(r.Context(), id, core.Money{Cents: req.BalanceCents}); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.DeleteAccount(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
