package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"conti/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "conti.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAccountCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateAccount(ctx, core.Account{Name: "main", Kind: core.Checking, Balance: core.Money{Cents: 12000}})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	a, err := repo.GetAccount(ctx, id)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if a.Name != "main" || a.Kind != core.Checking || a.Balance.Cents != 12000 {
		t.Errorf("account = %+v", a)
	}

	if err := repo.UpdateAccountBalance(ctx, id, core.Money{Cents: 500}); err != nil {
		t.Fatalf("UpdateAccountBalance: %v", err)
	}
	a, _ = repo.GetAccount(ctx, id)
	if a.Balance.Cents != 500 {
		t.Errorf("balance = %d, want 500", a.Balance.Cents)
	}

	if err := repo.DeleteAccount(ctx, id); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := repo.GetAccount(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteAccount(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCategorySeedAndHierarchy(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// The seed migration provides the default taxonomy.
	primaries, _, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(primaries) == 0 {
		t.Fatal("expected seeded primary categories")
	}

	if _, err := repo.CreateCategory(ctx, core.Category{Name: "Vet", Primary: primaries[0]}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	secondaries, err := repo.GetSecondariesByPrimary(ctx, primaries[0])
	if err != nil {
		t.Fatalf("GetSecondariesByPrimary: %v", err)
	}
	found := false
	for _, s := range secondaries {
		if s == "Vet" {
			found = true
		}
	}
	if !found {
		t.Errorf("secondaries = %v, want Vet included", secondaries)
	}
}

func TestGoalDeadlineRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	openEnded, err := repo.CreateGoal(ctx, core.Goal{Name: "rainy day", Target: core.Money{Cents: 100000}})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	dated, err := repo.CreateGoal(ctx, core.Goal{
		Name:     "holiday",
		Target:   core.Money{Cents: 50000},
		Deadline: core.NewDate(2026, 6, 1),
	})
	if err != nil {
		t.Fatalf("CreateGoal with deadline: %v", err)
	}

	goals, err := repo.ListGoals(ctx)
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	byID := make(map[int64]core.Goal, len(goals))
	for _, g := range goals {
		byID[g.ID] = g
	}
	if !byID[openEnded].Deadline.IsEmpty() {
		t.Errorf("open-ended goal deadline = %v, want empty", byID[openEnded].Deadline)
	}
	if got, want := byID[dated].Deadline, core.NewDate(2026, 6, 1); !got.Equal(want.Time) {
		t.Errorf("deadline = %v, want %v", got, want)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cardID, err := repo.CreateCard(ctx, core.Card{Name: "visa", Billing: core.CardBillingConfig{ClosingDay: 4, DueDay: 15}})
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	id, err := repo.CreateTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2025, 9, 10),
		Description: "groceries",
		Amount:      core.Money{Cents: 4250},
		Primary:     "Groceries",
		CardID:      cardID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	tx, err := repo.GetTransaction(ctx, id)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if tx.Description != "groceries" || tx.CardID != cardID || tx.PersonID != 0 {
		t.Errorf("transaction = %+v", tx)
	}
	if got, want := tx.Date, core.NewDate(2025, 9, 10); !got.Equal(want.Time) {
		t.Errorf("date = %v, want %v", got, want)
	}

	// New rows queue for export.
	pending, err := repo.GetPendingSyncTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncTransactions: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id || pending[0].Version != 1 {
		t.Errorf("pending = %+v", pending)
	}

	if err := repo.MarkSynced(ctx, id); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	pending, _ = repo.GetPendingSyncTransactions(ctx, 10)
	if len(pending) != 0 {
		t.Errorf("pending after sync = %+v", pending)
	}

	if err := repo.SoftDeleteTransaction(ctx, id); err != nil {
		t.Fatalf("SoftDeleteTransaction: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if err := repo.SoftDeleteTransaction(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestListCardTransactionsBetweenIsInclusive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cardID, err := repo.CreateCard(ctx, core.Card{Name: "visa", Billing: core.CardBillingConfig{ClosingDay: 4, DueDay: 15}})
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	dates := []core.Date{
		core.NewDate(2025, 9, 3),  // before window
		core.NewDate(2025, 9, 4),  // window start
		core.NewDate(2025, 10, 5), // window end
		core.NewDate(2025, 10, 6), // after window
	}
	for i, d := range dates {
		if _, err := repo.CreateTransaction(ctx, core.Transaction{
			Date:        d,
			Description: "tx",
			Amount:      core.Money{Cents: int64((i + 1) * 100)},
			Primary:     "Casa",
			CardID:      cardID,
		}); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	txs, err := repo.ListCardTransactionsBetween(ctx, cardID,
		core.NewDate(2025, 9, 4), core.NewDate(2025, 10, 5))
	if err != nil {
		t.Fatalf("ListCardTransactionsBetween: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if !txs[0].Date.Equal(core.NewDate(2025, 9, 4).Time) || !txs[1].Date.Equal(core.NewDate(2025, 10, 5).Time) {
		t.Errorf("window rows = %v, %v", txs[0].Date, txs[1].Date)
	}
}

func TestListPersonCardTransactionsJoinsBilling(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cardID, _ := repo.CreateCard(ctx, core.Card{Name: "visa", Billing: core.CardBillingConfig{ClosingDay: 20, DueDay: 10}})
	personID, _ := repo.CreatePerson(ctx, core.Person{Name: "Anna"})

	if _, err := repo.CreateTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2025, 9, 10),
		Description: "dinner",
		Amount:      core.Money{Cents: 3000},
		Primary:     "Fuori",
		CardID:      cardID,
		PersonID:    personID,
	}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	// A cash transaction of the same person has no card and must not join.
	if _, err := repo.CreateTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2025, 9, 11),
		Description: "cash",
		Amount:      core.Money{Cents: 500},
		Primary:     "Fuori",
		PersonID:    personID,
	}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	rows, err := repo.ListPersonCardTransactions(ctx, personID,
		core.NewDate(2025, 9, 1), core.NewDate(2025, 9, 30))
	if err != nil {
		t.Fatalf("ListPersonCardTransactions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Billing.ClosingDay != 20 || rows[0].Billing.DueDay != 10 {
		t.Errorf("billing = %+v", rows[0].Billing)
	}
}

func TestReadMonthOverviewGroupsByPrimary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, tx := range []core.Transaction{
		{Date: core.NewDate(2025, 9, 1), Description: "rent", Amount: core.Money{Cents: 80000}, Primary: "Casa"},
		{Date: core.NewDate(2025, 9, 15), Description: "food", Amount: core.Money{Cents: 6000}, Primary: "Groceries"},
		{Date: core.NewDate(2025, 9, 20), Description: "more food", Amount: core.Money{Cents: 4000}, Primary: "Groceries"},
		{Date: core.NewDate(2025, 10, 1), Description: "next month", Amount: core.Money{Cents: 999}, Primary: "Casa"},
	} {
		if _, err := repo.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	overview, err := repo.ReadMonthOverview(ctx, 2025, 9)
	if err != nil {
		t.Fatalf("ReadMonthOverview: %v", err)
	}
	if overview.Total.Cents != 90000 {
		t.Errorf("total = %d, want 90000", overview.Total.Cents)
	}
	if len(overview.ByCategory) != 2 {
		t.Fatalf("categories = %+v", overview.ByCategory)
	}
	// Ordered by descending spend.
	if overview.ByCategory[0].Name != "Casa" || overview.ByCategory[0].Amount.Cents != 80000 {
		t.Errorf("top category = %+v", overview.ByCategory[0])
	}
	if overview.ByCategory[1].Name != "Groceries" || overview.ByCategory[1].Amount.Cents != 10000 {
		t.Errorf("second category = %+v", overview.ByCategory[1])
	}
}
