// Package worker moves locally recorded transactions into the external
// ledger. It consumes AMQP sync messages and, as a safety net, drains
// any rows still marked pending in SQLite.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"conti/internal/amqp"
	"conti/internal/core"
	"conti/internal/sheets"
	"conti/internal/storage"
)

// Store is the slice of the repository the worker needs.
type Store interface {
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	GetPendingSyncTransactions(ctx context.Context, limit int) ([]storage.PendingSyncTransaction, error)
	MarkSynced(ctx context.Context, id int64) error
	MarkSyncError(ctx context.Context, id int64) error
}

type SyncWorker struct {
	store     Store
	ledger    sheets.LedgerWriter
	batchSize int
}

func NewSyncWorker(store Store, ledger sheets.LedgerWriter, batchSize int) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &SyncWorker{store: store, ledger: ledger, batchSize: batchSize}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	tx, err := w.store.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	if err := w.export(ctx, msg.ID, tx); err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}
	return nil
}

// DrainPending exports every transaction still marked pending, up to
// one batch. Rows are exported concurrently; a failed row is marked
// with a sync error and does not stop the rest of the batch.
func (w *SyncWorker) DrainPending(ctx context.Context) error {
	pending, err := w.store.GetPendingSyncTransactions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Draining pending transactions", "count", len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, p := range pending {
		g.Go(func() error {
			tx, err := w.store.GetTransaction(gctx, p.ID)
			if err != nil {
				slog.ErrorContext(gctx, "Failed to load pending transaction",
					"id", p.ID, "error", err)
				if markErr := w.store.MarkSyncError(gctx, p.ID); markErr != nil {
					slog.ErrorContext(gctx, "Failed to mark sync error",
						"id", p.ID, "error", markErr)
				}
				return nil
			}
			if err := w.export(gctx, p.ID, tx); err != nil {
				slog.ErrorContext(gctx, "Failed to export pending transaction",
					"id", p.ID, "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// StartupSyncCheck drains a larger backlog once at worker startup, to
// recover from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.store.GetPendingSyncTransactions(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	synced := 0
	failed := 0
	for _, p := range pending {
		tx, err := w.store.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load transaction for startup sync",
				"id", p.ID, "error", err)
			if markErr := w.store.MarkSyncError(ctx, p.ID); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error",
					"id", p.ID, "error", markErr)
			}
			failed++
			continue
		}
		if err := w.export(ctx, p.ID, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction during startup",
				"id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *SyncWorker) export(ctx context.Context, id int64, tx core.Transaction) error {
	ref, err := w.ledger.Append(ctx, tx)
	if err != nil {
		if markErr := w.store.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to ledger: %w", err)
	}

	if err := w.store.MarkSynced(ctx, id); err != nil {
		// The row reached the ledger; the local flag is best effort.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Exported transaction to ledger",
		"id", id,
		"ledger_ref", ref)
	return nil
}
