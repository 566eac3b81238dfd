package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Checking AccountKind = "checking"
	Savings  AccountKind = "savings"
	Wallet   AccountKind = "wallet"
)

type (
	AccountKind string

	// Date is a civil calendar date. The embedded time.Time is always
	// midnight UTC; the tracker does no timezone arithmetic.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Account struct {
		ID      int64
		Name    string
		Kind    AccountKind
		Balance Money
	}

	Category struct {
		ID      int64
		Name    string
		Primary string // empty for top-level categories
	}

	Person struct {
		ID   int64
		Name string
	}

	Goal struct {
		ID       int64
		Name     string
		Target   Money
		Saved    Money
		Deadline Date // optional, zero when open-ended
	}

	// Card is a payment card whose invoices close on ClosingDay and fall
	// due on DueDay. Both are plain calendar days (1..31); the billing
	// engine clips and rolls them as needed.
	Card struct {
		ID      int64
		Name    string
		Billing CardBillingConfig
	}

	Transaction struct {
		ID          int64
		Date        Date
		Description string
		Amount      Money
		Primary     string
		Secondary   string
		CardID      int64 // 0 for account (non-card) transactions
		PersonID    int64 // 0 when not attributed to a household member
	}
)

var (
	ErrInvalidDay        = errors.New("invalid day")
	ErrInvalidMonth      = errors.New("invalid month")
	ErrInvalidClosingDay = errors.New("closing day must be between 1 and 31")
	ErrInvalidDueDay     = errors.New("due day must be between 1 and 31")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyName         = errors.New("empty name")
	ErrEmptyDescription  = errors.New("empty description")
	ErrEmptyPrimary      = errors.New("empty primary category")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its civil date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// EndOfDay returns the inclusive end-of-day instant (23:59:59) used to
// bound BETWEEN queries over timestamped rows.
func (d Date) EndOfDay() time.Time {
	return time.Date(d.Year(), d.Time.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// IsEmpty returns true if the date is zero (optional dates).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	switch a.Kind {
	case Checking, Savings, Wallet:
	default:
		return errors.New("invalid account kind")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (p Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if err := g.Target.Validate(); err != nil {
		return errors.New("invalid target: " + err.Error())
	}
	if g.Saved.Cents < 0 {
		return errors.New("saved amount cannot be negative")
	}
	return nil
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return c.Billing.Validate()
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Primary) == "" {
		return ErrEmptyPrimary
	}
	return nil
}
