// Package services orchestrates the domain operations: recording
// transactions, resolving card invoices and building person reports.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"conti/internal/core"
)

// TransactionStore is the slice of the repository the transaction
// service needs.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (int64, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	SoftDeleteTransaction(ctx context.Context, id int64) error
	GetCard(ctx context.Context, id int64) (core.Card, error)
}

// SyncPublisher announces a saved transaction to the export worker.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id, version int64) error
}

// TransactionService saves transactions locally and publishes sync
// messages for the ledger export.
type TransactionService struct {
	store     TransactionStore
	publisher SyncPublisher
}

func NewTransactionService(store TransactionStore, publisher SyncPublisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

// CreateTransaction validates and saves a transaction, then publishes
// a sync message. When the transaction is on a card, the resolved
// invoice month is logged so misconfigured closing days surface early.
func (s *TransactionService) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("validate transaction: %w", err)
	}

	if t.CardID != 0 {
		card, err := s.store.GetCard(ctx, t.CardID)
		if err != nil {
			return 0, fmt.Errorf("resolve card %d: %w", t.CardID, err)
		}
		invoice, err := core.AssignInvoiceMonth(card.Billing, t.Date)
		if err != nil {
			return 0, fmt.Errorf("assign invoice month: %w", err)
		}
		slog.InfoContext(ctx, "Card transaction assigned to invoice",
			"card_id", t.CardID,
			"tx_date", t.Date.Format("2006-01-02"),
			"invoice_year", invoice.Year,
			"invoice_month", invoice.Month)
	}

	id, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	// New rows always start at version 1.
	if err := s.publishSync(ctx, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
		// The transaction is saved locally; the drain loop recovers it.
	}

	return id, nil
}

// DeleteTransaction soft deletes a transaction locally and returns the
// deleted row so callers can drop anything derived from it. The ledger
// mirror keeps its row; only local queries hide it.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	if err := s.store.SoftDeleteTransaction(ctx, id); err != nil {
		return core.Transaction{}, fmt.Errorf("soft delete transaction: %w", err)
	}
	return t, nil
}

func (s *TransactionService) publishSync(ctx context.Context, id, version int64) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishTransactionSync(ctx, id, version)
}
