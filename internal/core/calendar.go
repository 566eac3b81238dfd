// Package core holds the domain value types and the billing-cycle engine.
//
// This file contains the primitive day arithmetic everything else builds on:
// month lengths, day clipping, and the weekend roll-forward rule. All
// functions are pure; callers validate month ranges at the engine entry
// points, so these helpers assume months in 1..12.
package core

import "time"

// DaysInMonth returns the number of days in the given month, honouring
// leap years. Day 0 of the following month is the last day of this one.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClipDay clamps a configured day to the length of the month, so a
// closing day of 31 resolves to Feb 28 (or 29 in leap years).
func ClipDay(year, month, day int) int {
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// RollForwardIfWeekend moves a date that lands on a weekend to the next
// Monday. The switch is exhaustive over the weekday enum so additional
// calendar rules (holidays) extend the table rather than nest conditions.
func RollForwardIfWeekend(d Date) Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(2)
	case time.Sunday:
		return d.AddDays(1)
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday:
		return d
	default:
		return d
	}
}

// AddMonths shifts a (year, month) pair by delta months, carrying the
// overflow or underflow into the year. Month 0 becomes December of the
// previous year; month 13 becomes January of the next.
func AddMonths(year, month, delta int) (int, int) {
	m := month - 1 + delta
	y := year + m/12
	m %= 12
	if m < 0 {
		m += 12
		y--
	}
	return y, m + 1
}

// validMonth reports whether month is a real calendar month. The engine
// entry points use it to fail fast on caller bugs instead of producing a
// silently wrong date.
func validMonth(month int) bool {
	return month >= 1 && month <= 12
}
