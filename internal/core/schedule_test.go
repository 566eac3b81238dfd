package core

import "testing"

func TestInstallmentDates(t *testing.T) {
	tests := []struct {
		name  string
		first Date
		count int
		want  []Date
	}{
		{
			name:  "plain monthly spacing",
			first: NewDate(2025, 3, 10),
			count: 3,
			want:  []Date{NewDate(2025, 3, 10), NewDate(2025, 4, 10), NewDate(2025, 5, 10)},
		},
		{
			// Day 31 clips through short months and restores afterwards.
			name:  "anchor day survives short months",
			first: NewDate(2024, 1, 31),
			count: 4,
			want:  []Date{NewDate(2024, 1, 31), NewDate(2024, 2, 29), NewDate(2024, 3, 31), NewDate(2024, 4, 30)},
		},
		{
			name:  "crosses year boundary",
			first: NewDate(2025, 11, 15),
			count: 3,
			want:  []Date{NewDate(2025, 11, 15), NewDate(2025, 12, 15), NewDate(2026, 1, 15)},
		},
		{
			name:  "zero count",
			first: NewDate(2025, 1, 1),
			count: 0,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InstallmentDates(tt.first, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("InstallmentDates() returned %d dates, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Equal(tt.want[i].Time) {
					t.Errorf("installment %d = %v, want %v", i+1, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNextChargeDate(t *testing.T) {
	tests := []struct {
		name      string
		start     Date
		reference Date
		want      Date
	}{
		{"later this month", NewDate(2025, 1, 20), NewDate(2025, 3, 5), NewDate(2025, 3, 20)},
		{"charge day passed", NewDate(2025, 1, 5), NewDate(2025, 3, 10), NewDate(2025, 4, 5)},
		{"on the charge day", NewDate(2025, 1, 10), NewDate(2025, 3, 10), NewDate(2025, 4, 10)},
		{"anchor clips in february", NewDate(2025, 1, 31), NewDate(2025, 2, 10), NewDate(2025, 2, 28)},
		{"december rolls into january", NewDate(2025, 1, 15), NewDate(2025, 12, 20), NewDate(2026, 1, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextChargeDate(tt.start, tt.reference)
			if !got.Equal(tt.want.Time) {
				t.Errorf("NextChargeDate(%v, %v) = %v, want %v", tt.start, tt.reference, got, tt.want)
			}
		})
	}
}
