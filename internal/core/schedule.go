package core

// Installment and subscription charges are spaced with the same calendar
// primitives as the billing engine: months advance with year carry and
// the anchor day clips to short months, so a purchase on Jan 31 bills on
// Feb 28 (29 in leap years) and back on Mar 31. Persistence of the
// schedules lives elsewhere; this is only the date math.

// InstallmentDates returns the charge dates of a purchase split into
// count monthly installments, the first on the purchase date itself.
func InstallmentDates(first Date, count int) []Date {
	if count < 1 {
		return nil
	}
	dates := make([]Date, count)
	year, month, day := first.Year(), first.Month(), first.Day()
	for i := range dates {
		y, m := AddMonths(year, month, i)
		dates[i] = NewDate(y, m, ClipDay(y, m, day))
	}
	return dates
}

// NextChargeDate returns a subscription's first charge date strictly
// after the reference, anchored to the subscription's start day.
func NextChargeDate(start Date, reference Date) Date {
	y, m := reference.Year(), reference.Month()
	candidate := NewDate(y, m, ClipDay(y, m, start.Day()))
	if candidate.After(reference.Time) {
		return candidate
	}
	ny, nm := AddMonths(y, m, 1)
	return NewDate(ny, nm, ClipDay(ny, nm, start.Day()))
}
