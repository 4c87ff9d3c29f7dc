package booking

import (
	"testing"
	"time"
)

func TestValidateBookingTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		date string
		slot Slot
		code ErrorCode
	}{
		{
			name: "future slot accepted",
			date: "2025-06-10",
			slot: "18:00-19:00",
		},
		{
			name: "slot starting now accepted",
			date: "2025-06-10",
			slot: "17:00-18:00",
		},
		{
			name: "past slot rejected",
			date: "2025-06-10",
			slot: "16:00-17:00",
			code: ErrBookingInPast,
		},
		{
			name: "past date rejected",
			date: "2025-06-09",
			slot: "18:00-19:00",
			code: ErrBookingInPast,
		},
		{
			name: "garbage date rejected",
			date: "10-06-2025",
			slot: "18:00-19:00",
			code: ErrValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBookingTime(tc.date, tc.slot, now)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !IsCode(err, tc.code) {
				t.Fatalf("expected code %s, got %v", tc.code, err)
			}
		})
	}
}

func TestValidateModificationTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC)

	if err := ValidateModificationTime("2025-06-10", "17:30-18:30", now); err != nil {
		t.Fatalf("expected modification exactly at lead boundary to pass, got %v", err)
	}
	err := ValidateModificationTime("2025-06-10", "17:10-18:10", now)
	if !IsCode(err, ErrModificationWindowClosed) {
		t.Fatalf("expected modification window closed, got %v", err)
	}
}
