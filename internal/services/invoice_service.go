package services

import (
	"context"
	"fmt"
	"log/slog"

	"conti/internal/core"
)

// InvoiceStore is the slice of the repository the invoice service needs.
type InvoiceStore interface {
	GetCard(ctx context.Context, id int64) (core.Card, error)
	ListCards(ctx context.Context) ([]core.Card, error)
	ListCardTransactionsBetween(ctx context.Context, cardID int64, start, end core.Date) ([]core.Transaction, error)
}

// InvoiceService resolves card invoices: which transactions belong to
// an invoice month and when it falls due.
type InvoiceService struct {
	store InvoiceStore
}

func NewInvoiceService(store InvoiceStore) *InvoiceService {
	return &InvoiceService{store: store}
}

// InvoiceForMonth returns the invoice of one card for an explicit
// invoice month.
func (s *InvoiceService) InvoiceForMonth(ctx context.Context, cardID int64, year, month int) (core.InvoiceOverview, error) {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return core.InvoiceOverview{}, fmt.Errorf("get card %d: %w", cardID, err)
	}

	period, err := core.PeriodForInvoiceMonth(card.Billing, year, month)
	if err != nil {
		return core.InvoiceOverview{}, fmt.Errorf("resolve period: %w", err)
	}
	return s.resolve(ctx, card, period)
}

// InvoiceAsOf returns the invoice a reference date falls into, the one
// a cardholder means by "the current invoice".
func (s *InvoiceService) InvoiceAsOf(ctx context.Context, cardID int64, reference core.Date) (core.InvoiceOverview, error) {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return core.InvoiceOverview{}, fmt.Errorf("get card %d: %w", cardID, err)
	}

	period, err := core.CurrentPeriod(card.Billing, reference)
	if err != nil {
		return core.InvoiceOverview{}, fmt.Errorf("resolve current period: %w", err)
	}
	return s.resolve(ctx, card, period)
}

// CurrentInvoices resolves the current invoice of every card.
func (s *InvoiceService) CurrentInvoices(ctx context.Context, reference core.Date) ([]core.InvoiceOverview, error) {
	cards, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	invoices := make([]core.InvoiceOverview, 0, len(cards))
	for _, card := range cards {
		period, err := core.CurrentPeriod(card.Billing, reference)
		if err != nil {
			slog.WarnContext(ctx, "Skipping card with invalid billing config",
				"card_id", card.ID, "error", err)
			continue
		}
		inv, err := s.resolve(ctx, card, period)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (s *InvoiceService) resolve(ctx context.Context, card core.Card, period core.BillPeriod) (core.InvoiceOverview, error) {
	due, err := core.DueDate(card.Billing, period.Due.Year, period.Due.Month)
	if err != nil {
		return core.InvoiceOverview{}, fmt.Errorf("resolve due date: %w", err)
	}

	items, err := s.store.ListCardTransactionsBetween(ctx, card.ID, period.Start, period.End)
	if err != nil {
		return core.InvoiceOverview{}, fmt.Errorf("list card transactions: %w", err)
	}

	var total core.Money
	for _, t := range items {
		total = total.Add(t.Amount)
	}

	return core.InvoiceOverview{
		CardID:  card.ID,
		Period:  period,
		DueDate: due,
		Total:   total,
		Items:   items,
	}, nil
}
