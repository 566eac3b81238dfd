// Package memory is an in-memory implementation of the ledger ports,
// used by tests and when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"conti/internal/core"
)

type Ledger struct {
	mu   sync.Mutex
	cats []string
	subs []string
	rows []core.Transaction
	fail bool
}

func New(cats, subs []string) *Ledger {
	return &Ledger{cats: dedupeSorted(cats), subs: dedupeSorted(subs)}
}

// Append stores the transaction and returns a synthetic row reference.
func (l *Ledger) Append(_ context.Context, t core.Transaction) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return "", fmt.Errorf("ledger unavailable")
	}
	l.rows = append(l.rows, t)
	return fmt.Sprintf("mem:%d", len(l.rows)), nil
}

// List returns categories and subcategories.
func (l *Ledger) List(_ context.Context) ([]string, []string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cats := append([]string(nil), l.cats...)
	subs := append([]string(nil), l.subs...)
	return cats, subs, nil
}

// Rows returns a copy of everything appended so far.
func (l *Ledger) Rows() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Transaction(nil), l.rows...)
}

// FailAppends makes every subsequent Append return an error; tests use
// it to drive the sync-error path.
func (l *Ledger) FailAppends(fail bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fail = fail
}

func dedupeSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
