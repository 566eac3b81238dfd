// Package http exposes the tracker as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"conti/internal/cache"
	"conti/internal/core"
	"conti/internal/middleware"
	"conti/internal/services"
	"conti/internal/storage"
)

// Store is everything the CRUD handlers need from the repository.
type Store interface {
	CreateAccount(ctx context.Context, a core.Account) (int64, error)
	GetAccount(ctx context.Context, id int64) (core.Account, error)
	ListAccounts(ctx context.Context) ([]core.Account, error)
	UpdateAccountBalance(ctx context.Context, id int64, balance core.Money) error
	DeleteAccount(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, c core.Category) (int64, error)
	ListCategories(ctx context.Context) ([]string, []string, error)
	GetSecondariesByPrimary(ctx context.Context, primary string) ([]string, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreatePerson(ctx context.Context, p core.Person) (int64, error)
	ListPeople(ctx context.Context) ([]core.Person, error)
	DeletePerson(ctx context.Context, id int64) error

	CreateGoal(ctx context.Context, g core.Goal) (int64, error)
	ListGoals(ctx context.Context) ([]core.Goal, error)
	UpdateGoalSaved(ctx context.Context, id int64, saved core.Money) error
	DeleteGoal(ctx context.Context, id int64) error

	CreateCard(ctx context.Context, c core.Card) (int64, error)
	GetCard(ctx context.Context, id int64) (core.Card, error)
	ListCards(ctx context.Context) ([]core.Card, error)
	UpdateCard(ctx context.Context, c core.Card) error
	DeleteCard(ctx context.Context, id int64) error
}

// Transactions is the write path for transactions.
type Transactions interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (int64, error)
	DeleteTransaction(ctx context.Context, id int64) (core.Transaction, error)
}

// Invoices resolves card invoices.
type Invoices interface {
	InvoiceForMonth(ctx context.Context, cardID int64, year, month int) (core.InvoiceOverview, error)
	InvoiceAsOf(ctx context.Context, cardID int64, reference core.Date) (core.InvoiceOverview, error)
	CurrentInvoices(ctx context.Context, reference core.Date) ([]core.InvoiceOverview, error)
}

// Reports builds spending summaries.
type Reports interface {
	PersonInvoiceReport(ctx context.Context, personID int64, from, to core.InvoiceMonth) (core.PersonReport, error)
	MonthOverview(ctx context.Context, year, month int) (core.MonthOverview, error)
}

type Server struct {
	http.Server

	store        Store
	transactions Transactions
	invoices     Invoices
	reports      Reports

	limiter  *middleware.Limiter
	cacheMgr *cache.Manager

	overviewCache *cache.LRUCache[core.MonthOverview]
	invoiceCache  *cache.LRUCache[core.InvoiceOverview]

	shutdownOnce sync.Once
}

// NewServer wires routes, rate limiting and read caches.
func NewServer(addr string, store Store, tx Transactions, inv Invoices, rep Reports) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:         store,
		transactions:  tx,
		invoices:      inv,
		reports:       rep,
		limiter:       middleware.NewLimiter(60),
		cacheMgr:      cache.NewManager(),
		overviewCache: cache.NewLRUCache[core.MonthOverview](100, 5*time.Minute),
		invoiceCache:  cache.NewLRUCache[core.InvoiceOverview](200, 5*time.Minute),
	}
	s.cacheMgr.Register(s.overviewCache)
	s.cacheMgr.Register(s.invoiceCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /accounts", s.handleListAccounts)
	mux.HandleFunc("POST /accounts", s.handleCreateAccount)
	mux.HandleFunc("GET /accounts/{id}", s.handleGetAccount)
	mux.HandleFunc("PUT /accounts/{id}/balance", s.handleUpdateAccountBalance)
	mux.HandleFunc("DELETE /accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("POST /categories", s.handleCreateCategory)
	mux.HandleFunc("GET /categories/{primary}/secondaries", s.handleListSecondaries)
	mux.HandleFunc("DELETE /categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /people", s.handleListPeople)
	mux.HandleFunc("POST /people", s.handleCreatePerson)
	mux.HandleFunc("DELETE /people/{id}", s.handleDeletePerson)
	mux.HandleFunc("GET /people/{id}/report", s.handlePersonReport)

	mux.HandleFunc("GET /goals", s.handleListGoals)
	mux.HandleFunc("POST /goals", s.handleCreateGoal)
	mux.HandleFunc("PUT /goals/{id}/saved", s.handleUpdateGoalSaved)
	mux.HandleFunc("DELETE /goals/{id}", s.handleDeleteGoal)

	mux.HandleFunc("GET /cards", s.handleListCards)
	mux.HandleFunc("POST /cards", s.handleCreateCard)
	mux.HandleFunc("GET /cards/{id}", s.handleGetCard)
	mux.HandleFunc("PUT /cards/{id}", s.handleUpdateCard)
	mux.HandleFunc("DELETE /cards/{id}", s.handleDeleteCard)
	mux.HandleFunc("GET /cards/{id}/invoice", s.handleCardInvoice)

	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /invoices/current", s.handleCurrentInvoices)
	mux.HandleFunc("GET /overview", s.handleMonthOverview)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	handler := middleware.Trace(middleware.SecurityHeaders(s.limiter.Limit(mux)))
	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// Shutdown stops the background routines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

var _ Store = (*storage.SQLiteRepository)(nil)
var _ Transactions = (*services.TransactionService)(nil)
var _ Invoices = (*services.InvoiceService)(nil)
var _ Reports = (*services.ReportService)(nil)
