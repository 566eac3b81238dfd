package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"conti/internal/core"

	_ "modernc.org/sqlite"
)

// dateFormat is how civil dates are stored; the lexicographic order of
// the format matches calendar order, so BETWEEN works on text columns.
const dateFormat = "2006-01-02"

var ErrNotFound = errors.New("not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- Accounts ---

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (name, kind, balance_cents) VALUES (?, ?, ?)`,
		a.Name, string(a.Kind), a.Balance.Cents)
	if err != nil {
		return 0, fmt.Errorf("create account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("account id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	var a core.Account
	var kind string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, kind, balance_cents FROM accounts WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &kind, &a.Balance.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("get account: %w", err)
	}
	a.Kind = core.AccountKind(kind)
	return a, nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, kind, balance_cents FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		var kind string
		if err := rows.Scan(&a.ID, &a.Name, &kind, &a.Balance.Cents); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Kind = core.AccountKind(kind)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *SQLiteRepository) UpdateAccountBalance(ctx context.Context, id int64, balance core.Money) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET balance_cents = ? WHERE id = ?`, balance.Cents, id)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	return requireRow(res, "account", id)
}

func (r *SQLiteRepository) DeleteAccount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return requireRow(res, "account", id)
}

// --- Categories ---

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, primary_category) VALUES (?, ?)`,
		c.Name, c.Primary)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category id: %w", err)
	}
	return id, nil
}

// ListCategories returns primary and secondary category names.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]string, []string, error) {
	primaries, err := r.scanNames(ctx,
		`SELECT name FROM categories WHERE primary_category = '' ORDER BY name`)
	if err != nil {
		return nil, nil, fmt.Errorf("get primary categories: %w", err)
	}
	secondaries, err := r.scanNames(ctx,
		`SELECT name FROM categories WHERE primary_category != '' ORDER BY name`)
	if err != nil {
		return nil, nil, fmt.Errorf("get secondary categories: %w", err)
	}
	return primaries, secondaries, nil
}

func (r *SQLiteRepository) GetSecondariesByPrimary(ctx context.Context, primary string) ([]string, error) {
	names, err := r.scanNamesArgs(ctx,
		`SELECT name FROM categories WHERE primary_category = ? ORDER BY name`, primary)
	if err != nil {
		return nil, fmt.Errorf("get secondary categories for primary %s: %w", primary, err)
	}
	return names, nil
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res, "category", id)
}

// --- People ---

func (r *SQLiteRepository) CreatePerson(ctx context.Context, p core.Person) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO people (name) VALUES (?)`, p.Name)
	if err != nil {
		return 0, fmt.Errorf("create person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("person id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListPeople(ctx context.Context) ([]core.Person, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM people ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []core.Person
	for rows.Next() {
		var p core.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func (r *SQLiteRepository) DeletePerson(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return requireRow(res, "person", id)
}

// --- Goals ---

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (int64, error) {
	var deadline any
	if !g.Deadline.IsEmpty() {
		deadline = g.Deadline.Format(dateFormat)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (name, target_cents, saved_cents, deadline) VALUES (?, ?, ?, ?)`,
		g.Name, g.Target.Cents, g.Saved.Cents, deadline)
	if err != nil {
		return 0, fmt.Errorf("create goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("goal id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_cents, saved_cents, deadline FROM goals ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		var g core.Goal
		var deadline sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &g.Target.Cents, &g.Saved.Cents, &deadline); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if deadline.Valid {
			d, err := parseDate(deadline.String)
			if err != nil {
				return nil, fmt.Errorf("goal %d deadline: %w", g.ID, err)
			}
			g.Deadline = d
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *SQLiteRepository) UpdateGoalSaved(ctx context.Context, id int64, saved core.Money) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET saved_cents = ? WHERE id = ?`, saved.Cents, id)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res, "goal", id)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res, "goal", id)
}

// --- Cards ---

func (r *SQLiteRepository) CreateCard(ctx context.Context, c core.Card) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (name, closing_day, due_day) VALUES (?, ?, ?)`,
		c.Name, c.Billing.ClosingDay, c.Billing.DueDay)
	if err != nil {
		return 0, fmt.Errorf("create card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("card id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetCard(ctx context.Context, id int64) (core.Card, error) {
	var c core.Card
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, closing_day, due_day FROM cards WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Billing.ClosingDay, &c.Billing.DueDay)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Card{}, fmt.Errorf("card %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Card{}, fmt.Errorf("get card: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, closing_day, due_day FROM cards ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		var c core.Card
		if err := rows.Scan(&c.ID, &c.Name, &c.Billing.ClosingDay, &c.Billing.DueDay); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *SQLiteRepository) UpdateCard(ctx context.Context, c core.Card) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cards SET name = ?, closing_day = ?, due_day = ? WHERE id = ?`,
		c.Name, c.Billing.ClosingDay, c.Billing.DueDay, c.ID)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	return requireRow(res, "card", c.ID)
}

func (r *SQLiteRepository) DeleteCard(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return requireRow(res, "card", id)
}

// --- Transactions ---

const transactionColumns = `id, tx_date, description, amount_cents,
	primary_category, secondary_category,
	COALESCE(card_id, 0), COALESCE(person_id, 0)`

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions
			(tx_date, description, amount_cents, primary_category, secondary_category, card_id, person_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Date.Format(dateFormat), t.Description, t.Amount.Cents,
		t.Primary, t.Secondary, nullableID(t.CardID), nullableID(t.PersonID))
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"date", t.Date.Format(dateFormat),
		"amount_cents", t.Amount.Cents,
		"card_id", t.CardID)
	return id, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND deleted_at IS NULL`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) SoftDeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	return requireRow(res, "transaction", id)
}

// ListCardTransactionsBetween returns a card's transactions with
// tx_date BETWEEN start AND end inclusive, the query shape the invoice
// detail view derives from a resolved BillPeriod.
func (r *SQLiteRepository) ListCardTransactionsBetween(ctx context.Context, cardID int64, start, end core.Date) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE card_id = ? AND deleted_at IS NULL
		   AND tx_date BETWEEN ? AND ?
		 ORDER BY tx_date, id`,
		cardID, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("list card transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// PersonCardTransaction pairs a person's card transaction with the
// billing configuration of the card it was made on, so report code can
// resolve its invoice month without a second lookup.
type PersonCardTransaction struct {
	Tx      core.Transaction
	Billing core.CardBillingConfig
}

func (r *SQLiteRepository) ListPersonCardTransactions(ctx context.Context, personID int64, start, end core.Date) ([]PersonCardTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.tx_date, t.description, t.amount_cents,
				t.primary_category, t.secondary_category,
				COALESCE(t.card_id, 0), COALESCE(t.person_id, 0),
				c.closing_day, c.due_day
		 FROM transactions t
		 JOIN cards c ON c.id = t.card_id
		 WHERE t.person_id = ? AND t.deleted_at IS NULL
		   AND t.tx_date BETWEEN ? AND ?
		 ORDER BY t.tx_date, t.id`,
		personID, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("list person card transactions: %w", err)
	}
	defer rows.Close()

	var result []PersonCardTransaction
	for rows.Next() {
		var (
			pct     PersonCardTransaction
			rawDate string
		)
		if err := rows.Scan(&pct.Tx.ID, &rawDate, &pct.Tx.Description, &pct.Tx.Amount.Cents,
			&pct.Tx.Primary, &pct.Tx.Secondary, &pct.Tx.CardID, &pct.Tx.PersonID,
			&pct.Billing.ClosingDay, &pct.Billing.DueDay); err != nil {
			return nil, fmt.Errorf("scan person transaction: %w", err)
		}
		d, err := parseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("transaction %d date: %w", pct.Tx.ID, err)
		}
		pct.Tx.Date = d
		result = append(result, pct)
	}
	return result, rows.Err()
}

// ReadMonthOverview totals a calendar month's spending by primary category.
func (r *SQLiteRepository) ReadMonthOverview(ctx context.Context, year, month int) (core.MonthOverview, error) {
	overview := core.MonthOverview{Year: year, Month: month}
	start := core.NewDate(year, month, 1)
	end := core.NewDate(year, month, core.DaysInMonth(year, month))

	rows, err := r.db.QueryContext(ctx,
		`SELECT primary_category, SUM(amount_cents)
		 FROM transactions
		 WHERE deleted_at IS NULL AND tx_date BETWEEN ? AND ?
		 GROUP BY primary_category
		 ORDER BY SUM(amount_cents) DESC`,
		start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return overview, fmt.Errorf("get category sums: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ca core.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.Amount.Cents); err != nil {
			return overview, fmt.Errorf("scan category sum: %w", err)
		}
		overview.ByCategory = append(overview.ByCategory, ca)
		overview.Total = overview.Total.Add(ca.Amount)
	}
	return overview, rows.Err()
}

// --- Export sync bookkeeping ---

// PendingSyncTransaction is the minimal row the export queue needs.
type PendingSyncTransaction struct {
	ID      int64
	Version int64
}

func (r *SQLiteRepository) GetPendingSyncTransactions(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version FROM transactions
		 WHERE sync_status = 'pending' AND deleted_at IS NULL
		 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncTransaction
	for rows.Next() {
		var p PendingSyncTransaction
		if err := rows.Scan(&p.ID, &p.Version); err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'synced' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'error' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		rawDate string
	)
	if err := row.Scan(&t.ID, &rawDate, &t.Description, &t.Amount.Cents,
		&t.Primary, &t.Secondary, &t.CardID, &t.PersonID); err != nil {
		return core.Transaction{}, err
	}
	d, err := parseDate(rawDate)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Date = d
	return t, nil
}

func collectTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func parseDate(s string) (core.Date, error) {
	t, err := time.ParseInLocation(dateFormat, s, time.UTC)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return core.DateOf(t), nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func requireRow(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) scanNames(ctx context.Context, query string) ([]string, error) {
	return r.scanNamesArgs(ctx, query)
}

func (r *SQLiteRepository) scanNamesArgs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
