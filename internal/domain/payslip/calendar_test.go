package payslip

import (
	"errors"
	"testing"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2025, 1, 31},
		{2025, 12, 31},
		{1900, 2, 28},
		{2000, 2, 29},
	}
	for _, tc := range cases {
		got, err := DaysInMonth(tc.year, tc.month)
		if err != nil {
			t.Fatalf("DaysInMonth(%d, %d) failed: %v", tc.year, tc.month, err)
		}
		if got != tc.want {
			t.Fatalf("DaysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestDaysInMonthRejectsOutOfRange(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		if _, err := DaysInMonth(2025, month); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth for month %d, got %v", month, err)
		}
	}
}
