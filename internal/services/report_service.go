package services

import (
	"context"
	"fmt"
	"sort"

	"conti/internal/core"
	"conti/internal/storage"
)

// ReportStore is the slice of the repository the report service needs.
type ReportStore interface {
	ListPersonCardTransactions(ctx context.Context, personID int64, start, end core.Date) ([]storage.PersonCardTransaction, error)
	ReadMonthOverview(ctx context.Context, year, month int) (core.MonthOverview, error)
}

// ReportService builds spending summaries: the per-person invoice
// report and the calendar month overview.
type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// PersonInvoiceReport groups one person's card spending by invoice
// month over [from, to]. Each transaction lands in exactly one bucket,
// resolved with the billing configuration of its own card, so the
// totals agree with the per-card invoice detail.
func (s *ReportService) PersonInvoiceReport(ctx context.Context, personID int64, from, to core.InvoiceMonth) (core.PersonReport, error) {
	if to.Before(from) {
		return core.PersonReport{}, fmt.Errorf("invalid report window: %d-%02d after %d-%02d",
			from.Year, from.Month, to.Year, to.Month)
	}

	// The raw window over-fetches by one month on each side: a card's
	// period can start in the month before its invoice month and the
	// closing date can roll a few days into the next one.
	startYear, startMonth := core.AddMonths(from.Year, from.Month, -1)
	endYear, endMonth := core.AddMonths(to.Year, to.Month, 1)
	start := core.NewDate(startYear, startMonth, 1)
	end := core.NewDate(endYear, endMonth, core.DaysInMonth(endYear, endMonth))

	rows, err := s.store.ListPersonCardTransactions(ctx, personID, start, end)
	if err != nil {
		return core.PersonReport{}, fmt.Errorf("list person card transactions: %w", err)
	}

	buckets := make(map[core.InvoiceMonth]*core.InvoiceBucket)
	for _, row := range rows {
		invoice, err := core.AssignInvoiceMonth(row.Billing, row.Tx.Date)
		if err != nil {
			return core.PersonReport{}, fmt.Errorf("assign invoice month for transaction %d: %w", row.Tx.ID, err)
		}
		if invoice.Before(from) || invoice.After(to) {
			continue
		}
		b, ok := buckets[invoice]
		if !ok {
			b = &core.InvoiceBucket{Invoice: invoice}
			buckets[invoice] = b
		}
		b.Total = b.Total.Add(row.Tx.Amount)
		b.Items = append(b.Items, row.Tx)
	}

	report := core.PersonReport{PersonID: personID, From: from, To: to}
	for _, b := range buckets {
		report.Total = report.Total.Add(b.Total)
		report.Buckets = append(report.Buckets, *b)
	}
	sort.Slice(report.Buckets, func(i, j int) bool {
		return report.Buckets[i].Invoice.Before(report.Buckets[j].Invoice)
	})
	return report, nil
}

// MonthOverview returns the calendar month spending summary.
func (s *ReportService) MonthOverview(ctx context.Context, year, month int) (core.MonthOverview, error) {
	if month < 1 || month > 12 {
		return core.MonthOverview{}, core.ErrInvalidMonth
	}
	overview, err := s.store.ReadMonthOverview(ctx, year, month)
	if err != nil {
		return core.MonthOverview{}, fmt.Errorf("read month overview: %w", err)
	}
	return overview, nil
}
