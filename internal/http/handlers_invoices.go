package http

import (
	"net/http"
)

// handleCardInvoice resolves one card's invoice. With year and month
// query parameters it returns that invoice month; otherwise the invoice
// the given (or current) date falls into.
func (s *Server) handleCardInvoice(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	q := r.URL.Query()
	if q.Get("year") != "" || q.Get("month") != "" {
		year, month, err := parseYearMonth(r)
		if err != nil {
			respondError(w, r, err)
			return
		}
		inv, err := s.invoices.InvoiceForMonth(r.Context(), cardID, year, month)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, viewInvoice(inv))
		return
	}

	reference, err := parseDateParam(r, "date")
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Only the no-parameter "current invoice" read is cached; explicit
	// dates are rare and cheap enough to resolve every time.
	cacheable := q.Get("date") == ""
	if cacheable {
		if inv, ok := s.invoiceCache.Get(invoiceCacheKey(cardID)); ok {
			respondJSON(w, http.StatusOK, viewInvoice(inv))
			return
		}
	}

	inv, err := s.invoices.InvoiceAsOf(r.Context(), cardID, reference)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if cacheable {
		s.invoiceCache.Set(invoiceCacheKey(cardID), inv)
	}
	respondJSON(w, http.StatusOK, viewInvoice(inv))
}

func (s *Server) handleCurrentInvoices(w http.ResponseWriter, r *http.Request) {
	reference, err := parseDateParam(r, "date")
	if err != nil {
		respondError(w, r, err)
		return
	}
	invoices, err := s.invoices.CurrentInvoices(r.Context(), reference)
	if err != nil {
		respondError(w, r, err)
		return
	}
	views := make([]invoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, viewInvoice(inv))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handlePersonReport(w http.ResponseWriter, r *http.Request) {
	personID, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	from, err := parseInvoiceMonth(r, "from")
	if err != nil {
		respondError(w, r, err)
		return
	}
	to, err := parseInvoiceMonth(r, "to")
	if err != nil {
		respondError(w, r, err)
		return
	}

	report, err := s.reports.PersonInvoiceReport(r.Context(), personID, from, to)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, viewReport(report))
}

func (s *Server) handleMonthOverview(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	key := overviewCacheKey(year, month)
	if overview, ok := s.overviewCache.Get(key); ok {
		respondJSON(w, http.StatusOK, viewOverview(overview))
		return
	}

	overview, err := s.reports.MonthOverview(r.Context(), year, month)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Set(key, overview)
	respondJSON(w, http.StatusOK, viewOverview(overview))
}

type dashboardView struct {
	Accounts []accountView `json:"accounts"`
	Goals    []goalView    `json:"goals"`
	Overview overviewView  `json:"overview"`
	Invoices []invoiceView `json:"invoices"`
}

// handleDashboard aggregates the landing-page reads in one response:
// account balances, goal progress, the current month overview and
// every card's current invoice.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}

	year, month, err := parseYearMonth(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	overview, err := s.reports.MonthOverview(ctx, year, month)
	if err != nil {
		respondError(w, r, err)
		return
	}

	reference, err := parseDateParam(r, "date")
	if err != nil {
		respondError(w, r, err)
		return
	}
	invoices, err := s.invoices.CurrentInvoices(ctx, reference)
	if err != nil {
		respondError(w, r, err)
		return
	}

	view := dashboardView{
		Accounts: make([]accountView, 0, len(accounts)),
		Goals:    make([]goalView, 0, len(goals)),
		Overview: viewOverview(overview),
		Invoices: make([]invoiceView, 0, len(invoices)),
	}
	for _, a := range accounts {
		view.Accounts = append(view.Accounts, viewAccount(a))
	}
	for _, g := range goals {
		view.Goals = append(view.Goals, viewGoal(g))
	}
	for _, inv := range invoices {
		view.Invoices = append(view.Invoices, viewInvoice(inv))
	}
	respondJSON(w, http.StatusOK, view)
}

