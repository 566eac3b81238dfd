package core

import (
	"errors"
	"testing"
)

func validTransaction() Transaction {
	return Transaction{
		Date:        NewDate(2025, 9, 20),
		Description: "groceries",
		Amount:      Money{Cents: 4250},
		Primary:     "Food",
		Secondary:   "Supermarket",
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, nil},
		{"empty description", func(tx *Transaction) { tx.Description = "  " }, ErrEmptyDescription},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -10} }, ErrInvalidAmount},
		{"missing primary category", func(tx *Transaction) { tx.Primary = "" }, ErrEmptyPrimary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.name == "zero date" {
				if err == nil {
					t.Error("Validate() = nil, want error for zero date")
				}
				return
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCardValidate(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		wantErr error
	}{
		{"valid", Card{Name: "Visa", Billing: CardBillingConfig{ClosingDay: 4, DueDay: 10}}, nil},
		{"empty name", Card{Billing: CardBillingConfig{ClosingDay: 4, DueDay: 10}}, ErrEmptyName},
		{"closing day too small", Card{Name: "Visa", Billing: CardBillingConfig{ClosingDay: 0, DueDay: 10}}, ErrInvalidClosingDay},
		{"closing day too large", Card{Name: "Visa", Billing: CardBillingConfig{ClosingDay: 32, DueDay: 10}}, ErrInvalidClosingDay},
		{"due day out of range", Card{Name: "Visa", Billing: CardBillingConfig{ClosingDay: 4, DueDay: 40}}, ErrInvalidDueDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccountValidate(t *testing.T) {
	if err := (Account{Name: "Main", Kind: Checking}).Validate(); err != nil {
		t.Errorf("valid account: %v", err)
	}
	if err := (Account{Name: "Main", Kind: AccountKind("credit")}).Validate(); err == nil {
		t.Error("invalid kind accepted")
	}
	if err := (Account{Kind: Checking}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: %v, want ErrEmptyName", err)
	}
}

func TestGoalValidate(t *testing.T) {
	if err := (Goal{Name: "Vacation", Target: Money{Cents: 100000}}).Validate(); err != nil {
		t.Errorf("valid goal: %v", err)
	}
	if err := (Goal{Name: "Vacation", Target: Money{}}).Validate(); err == nil {
		t.Error("zero target accepted")
	}
	if err := (Goal{Name: "Vacation", Target: Money{Cents: 100}, Saved: Money{Cents: -1}}).Validate(); err == nil {
		t.Error("negative saved accepted")
	}
}

func TestDateOf(t *testing.T) {
	d := DateOf(NewDate(2025, 6, 15).EndOfDay())
	if !d.Equal(NewDate(2025, 6, 15).Time) {
		t.Errorf("DateOf(end of day) = %v, want 2025-06-15", d)
	}
}
