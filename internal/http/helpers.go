package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"conti/internal/core"
	"conti/internal/storage"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case isValidationError(err):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		respondJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	respondJSON(w, status, errorBody{Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidDay, core.ErrInvalidMonth,
		core.ErrInvalidClosingDay, core.ErrInvalidDueDay,
		core.ErrInvalidAmount, core.ErrEmptyName,
		core.ErrEmptyDescription, core.ErrEmptyPrimary,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	var badReq *badRequestError
	return errors.As(err, &badReq)
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

// pathID parses the {id} segment of the matched route.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid id %q", raw)
	}
	return id, nil
}

// parseYearMonth reads year and month query parameters, defaulting to
// the current calendar month when a parameter is absent.
func parseYearMonth(r *http.Request) (year, month int, err error) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, badRequest("invalid year %q", v)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, badRequest("invalid month %q", v)
		}
	}
	return year, month, nil
}

// parseDateParam reads a YYYY-MM-DD query parameter, defaulting to today.
func parseDateParam(r *http.Request, name string) (core.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return core.DateOf(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return core.Date{}, badRequest("invalid %s %q, want YYYY-MM-DD", name, raw)
	}
	return core.DateOf(t), nil
}

// parseInvoiceMonth reads a YYYY-MM query parameter.
func parseInvoiceMonth(r *http.Request, name string) (core.InvoiceMonth, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return core.InvoiceMonth{}, badRequest("invalid %s %q, want YYYY-MM", name, raw)
	}
	return core.InvoiceMonth{Year: t.Year(), Month: int(t.Month())}, nil
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
