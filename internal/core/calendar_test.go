package core

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		want  int
	}{
		{"january", 2025, 1, 31},
		{"april", 2025, 4, 30},
		{"february non-leap", 2025, 2, 28},
		{"february leap", 2024, 2, 29},
		{"february century leap", 2000, 2, 29},
		{"february century non-leap", 1900, 2, 28},
		{"december", 2025, 12, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.want {
				t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestClipDay(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		day   int
		want  int
	}{
		{"day exists", 2025, 1, 15, 15},
		{"day 31 in 30-day month", 2025, 4, 31, 30},
		{"day 31 in february", 2025, 2, 31, 28},
		{"day 31 in leap february", 2024, 2, 31, 29},
		{"day 29 in non-leap february", 2025, 2, 29, 28},
		{"last day untouched", 2025, 3, 31, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClipDay(tt.year, tt.month, tt.day); got != tt.want {
				t.Errorf("ClipDay(%d, %d, %d) = %d, want %d", tt.year, tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestRollForwardIfWeekend(t *testing.T) {
	// 2025-09-01 is a Monday; the week that follows covers every weekday.
	tests := []struct {
		name string
		in   Date
		want Date
	}{
		{"monday unchanged", NewDate(2025, 9, 1), NewDate(2025, 9, 1)},
		{"tuesday unchanged", NewDate(2025, 9, 2), NewDate(2025, 9, 2)},
		{"wednesday unchanged", NewDate(2025, 9, 3), NewDate(2025, 9, 3)},
		{"thursday unchanged", NewDate(2025, 9, 4), NewDate(2025, 9, 4)},
		{"friday unchanged", NewDate(2025, 9, 5), NewDate(2025, 9, 5)},
		{"saturday rolls two days", NewDate(2025, 9, 6), NewDate(2025, 9, 8)},
		{"sunday rolls one day", NewDate(2025, 9, 7), NewDate(2025, 9, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RollForwardIfWeekend(tt.in)
			if !got.Equal(tt.want.Time) {
				t.Errorf("RollForwardIfWeekend(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if wd := got.Weekday(); wd == time.Saturday || wd == time.Sunday {
				t.Errorf("RollForwardIfWeekend(%v) landed on %v", tt.in, wd)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     int
		delta     int
		wantYear  int
		wantMonth int
	}{
		{"no movement", 2025, 6, 0, 2025, 6},
		{"forward within year", 2025, 6, 3, 2025, 9},
		{"december wraps forward", 2025, 12, 1, 2026, 1},
		{"january wraps backward", 2026, 1, -1, 2025, 12},
		{"full year forward", 2025, 7, 12, 2026, 7},
		{"full year backward", 2025, 7, -12, 2024, 7},
		{"thirteen months backward", 2025, 1, -13, 2023, 12},
		{"thirteen months forward", 2025, 12, 13, 2027, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotYear, gotMonth := AddMonths(tt.year, tt.month, tt.delta)
			if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
				t.Errorf("AddMonths(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.year, tt.month, tt.delta, gotYear, gotMonth, tt.wantYear, tt.wantMonth)
			}
		})
	}
}
