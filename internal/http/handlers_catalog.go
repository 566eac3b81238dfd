package http

import (
	"net/http"
	"time"

	"conti/internal/core"
)

// Categories, people and goals: the small reference tables the rest of
// the tracker hangs off.

type createCategoryRequest struct {
	Name    string `json:"name"`
	Primary string `json:"primary,omitempty"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	category := core.Category{Name: sanitizeInput(req.Name), Primary: sanitizeInput(req.Primary)}
	if err := category.Validate(); err != nil {
		respondError(w, r, badRequest("invalid category: %v", err))
		return
	}
	id, err := s.store.CreateCategory(r.Context(), category)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	primaries, secondaries, err := s.store.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{
		"primaries":   primaries,
		"secondaries": secondaries,
	})
}

func (s *Server) handleListSecondaries(w http.ResponseWriter, r *http.Request) {
	primary := sanitizeInput(r.PathValue("primary"))
	if primary == "" {
		respondError(w, r, badRequest("missing primary category"))
		return
	}
	secondaries, err := s.store.GetSecondariesByPrimary(r.Context(), primary)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, secondaries)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type createPersonRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	person := core.Person{Name: sanitizeInput(req.Name)}
	if err := person.Validate(); err != nil {
		respondError(w, r, badRequest("invalid person: %v", err))
		return
	}
	id, err := s.store.CreatePerson(r.Context(), person)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.store.ListPeople(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	views := make([]personView, 0, len(people))
	for _, p := range people {
		views = append(views, personView{ID: p.ID, Name: p.Name})
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.DeletePerson(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type createGoalRequest struct {
	Name        string `json:"name"`
	TargetCents int64  `json:"target_cents"`
	SavedCents  int64  `json:"saved_cents"`
	Deadline    string `json:"deadline,omitempty"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	goal := core.Goal{
		Name:   sanitizeInput(req.Name),
		Target: core.Money{Cents: req.TargetCents},
		Saved:  core.Money{Cents: req.SavedCents},
	}
	if req.Deadline != "" {
		t, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			respondError(w, r, badRequest("invalid deadline %q, want YYYY-MM-DD", req.Deadline))
			return
		}
		goal.Deadline = core.DateOf(t)
	}
	if err := goal.Validate(); err != nil {
		respondError(w, r, badRequest("invalid goal: %v", err))
		return
	}

	id, err := s.store.CreateGoal(r.Context(), goal)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.ListGoals(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, viewGoal(g))
	}
	respondJSON(w, http.StatusOK, views)
}

type updateSavedRequest struct {
	SavedCents int64 `json:"saved_cents"`
}

func (s *Server) handleUpdateGoalSaved(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req updateSavedRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.SavedCents < 0 {
		respondError(w, r, badRequest("saved amount cannot be negative"))
		return
	}
	if err := s.store.UpdateGoalSaved(r.Context(), id, core.Money{Cents: req.SavedCents}); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.DeleteGoal(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
