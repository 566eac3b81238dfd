package memory

import (
	"context"
	"testing"

	"conti/internal/core"
)

func TestAppendAndRows(t *testing.T) {
	l := New([]string{"Casa", "Spesa"}, []string{"Affitto"})

	tx := core.Transaction{
		Date:        core.NewDate(2025, 9, 10),
		Description: "groceries",
		Amount:      core.Money{Cents: 1250},
		Primary:     "Spesa",
	}
	ref, err := l.Append(context.Background(), tx)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}
	rows := l.Rows()
	if len(rows) != 1 || rows[0].Description != "groceries" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestFailAppends(t *testing.T) {
	l := New(nil, nil)
	l.FailAppends(true)
	if _, err := l.Append(context.Background(), core.Transaction{}); err == nil {
		t.Fatal("expected error after FailAppends")
	}
	l.FailAppends(false)
	if _, err := l.Append(context.Background(), core.Transaction{}); err != nil {
		t.Fatalf("Append after recovery: %v", err)
	}
}

func TestListDedupes(t *testing.T) {
	l := New([]string{"B", "A", "B", ""}, []string{"x"})
	cats, subs, err := l.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cats) != 2 || cats[0] != "A" || cats[1] != "B" {
		t.Errorf("cats = %v", cats)
	}
	if len(subs) != 1 {
		t.Errorf("subs = %v", subs)
	}
}
