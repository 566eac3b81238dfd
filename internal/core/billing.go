package core

import "fmt"

type (
	// CardBillingConfig is the billing configuration owned by a Card:
	// the day the invoice closes and the day it falls due. Read-only
	// input to the engine, validated at the card CRUD boundary.
	CardBillingConfig struct {
		ClosingDay int // 1..31
		DueDay     int // 1..31
	}

	// InvoiceMonth is the canonical label of one billing cycle, named
	// after the month its payment is due.
	InvoiceMonth struct {
		Year  int
		Month int // 1-12
	}

	// BillPeriod is the inclusive date range of one invoice. Recomputed
	// on demand, never persisted; equality is structural. End is the
	// last civil day of the cycle and End.EndOfDay() bounds BETWEEN
	// queries over timestamped rows.
	BillPeriod struct {
		Start Date
		End   Date
		Due   InvoiceMonth
	}
)

// Validate rejects closing and due days outside 1..31.
func (c CardBillingConfig) Validate() error {
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return fmt.Errorf("%w: got %d", ErrInvalidClosingDay, c.ClosingDay)
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return fmt.Errorf("%w: got %d", ErrInvalidDueDay, c.DueDay)
	}
	return nil
}

// Contains reports whether the civil date falls inside [Start, End].
func (p BillPeriod) Contains(d Date) bool {
	return !d.Before(p.Start.Time) && !d.After(p.End.Time)
}

// EffectiveClosingDate computes the date a card's invoice actually closes
// in the given month: the configured day clipped to the month length,
// rolled to Monday when it lands on a weekend. This is the sole home of
// the weekend rule; the result is never a Saturday or Sunday and falls
// within {raw, raw+1, raw+2}.
func EffectiveClosingDate(year, month, closingDay int) Date {
	raw := NewDate(year, month, ClipDay(year, month, closingDay))
	return RollForwardIfWeekend(raw)
}

// PeriodForInvoiceMonth returns the billing period of the invoice due in
// (dueYear, dueMonth). The period ends the day before the month's
// effective closing date and starts on the previous month's effective
// closing date, so consecutive periods tile the calendar without gap or
// overlap. DueDay never enters the range computation: changing it must
// not shift which transactions land in which invoice.
func PeriodForInvoiceMonth(cfg CardBillingConfig, dueYear, dueMonth int) (BillPeriod, error) {
	if err := cfg.Validate(); err != nil {
		return BillPeriod{}, fmt.Errorf("billing config: %w", err)
	}
	if !validMonth(dueMonth) {
		return BillPeriod{}, fmt.Errorf("%w: got %d", ErrInvalidMonth, dueMonth)
	}

	end := EffectiveClosingDate(dueYear, dueMonth, cfg.ClosingDay).AddDays(-1)
	prevYear, prevMonth := AddMonths(dueYear, dueMonth, -1)
	start := EffectiveClosingDate(prevYear, prevMonth, cfg.ClosingDay)

	return BillPeriod{
		Start: start,
		End:   end,
		Due:   InvoiceMonth{Year: dueYear, Month: dueMonth},
	}, nil
}

// DueDate returns the informational payment deadline of an invoice,
// clipped to the month length. Decoupled from the period math.
func DueDate(cfg CardBillingConfig, dueYear, dueMonth int) (Date, error) {
	if err := cfg.Validate(); err != nil {
		return Date{}, fmt.Errorf("billing config: %w", err)
	}
	if !validMonth(dueMonth) {
		return Date{}, fmt.Errorf("%w: got %d", ErrInvalidMonth, dueMonth)
	}
	return NewDate(dueYear, dueMonth, ClipDay(dueYear, dueMonth, cfg.DueDay)), nil
}

// CurrentPeriod resolves which invoice a point in time falls into. The
// candidate is the period closing in the reference's own calendar month;
// a reference past that period's end (on or after the effective closing
// date) belongs to the next month's invoice, and a reference before its
// start (the previous month's closing rolled into this month) belongs to
// the previous one. Periods tile the calendar, so one step either way
// always lands the reference inside the returned range.
//
// The upper boundary is inclusive on the candidate side: a transaction
// dated on the raw weekend closing day still lands in the closing
// invoice, because the roll-forward pushed End past it. A transaction
// dated exactly on the effective (rolled) closing date is after End and
// opens the next invoice.
func CurrentPeriod(cfg CardBillingConfig, reference Date) (BillPeriod, error) {
	candidate, err := PeriodForInvoiceMonth(cfg, reference.Year(), reference.Month())
	if err != nil {
		return BillPeriod{}, err
	}
	switch {
	case reference.After(candidate.End.Time):
		nextYear, nextMonth := AddMonths(reference.Year(), reference.Month(), 1)
		return PeriodForInvoiceMonth(cfg, nextYear, nextMonth)
	case reference.Before(candidate.Start.Time):
		prevYear, prevMonth := AddMonths(reference.Year(), reference.Month(), -1)
		return PeriodForInvoiceMonth(cfg, prevYear, prevMonth)
	default:
		return candidate, nil
	}
}

// AssignInvoiceMonth maps a transaction date to the invoice month it
// belongs to. Report and aggregation code groups by this label instead of
// the raw date so every consumer agrees with the invoice detail view.
func AssignInvoiceMonth(cfg CardBillingConfig, txDate Date) (InvoiceMonth, error) {
	period, err := CurrentPeriod(cfg, txDate)
	if err != nil {
		return InvoiceMonth{}, err
	}
	return period.Due, nil
}

// Next returns the label of the following invoice month.
func (m InvoiceMonth) Next() InvoiceMonth {
	y, mo := AddMonths(m.Year, m.Month, 1)
	return InvoiceMonth{Year: y, Month: mo}
}

// Before reports whether m precedes other in calendar order.
func (m InvoiceMonth) Before(other InvoiceMonth) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// After reports whether m follows other in calendar order.
func (m InvoiceMonth) After(other InvoiceMonth) bool {
	return other.Before(m)
}
