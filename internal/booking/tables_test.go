package booking

import (
	"testing"
	"time"
)

func TestMatchSlotsFiltersAndSorts(t *testing.T) {
	record := TableSlotRecord{
		TableID:    "3",
		LocationID: "loc-1",
		Date:       "2025-06-10",
		Capacity:   4,
		Slots: map[Slot]bool{
			"12:00-13:00": true,
			"14:00-15:00": false,
			"18:00-19:00": true,
			"20:00-21:00": true,
		},
	}
	now := time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)

	got := record.MatchSlots("", now)
	if len(got) != 2 || got[0] != "18:00-19:00" || got[1] != "20:00-21:00" {
		t.Fatalf("expected future available slots sorted, got %v", got)
	}
}

func TestMatchSlotsExactTimeRequest(t *testing.T) {
	record := TableSlotRecord{
		TableID: "3",
		Date:    "2025-06-10",
		Slots: map[Slot]bool{
			"18:00-19:00": true,
			"19:00-20:00": true,
		},
	}
	now := time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)

	got := record.MatchSlots("18:00", now)
	if len(got) != 1 || got[0] != "18:00-19:00" {
		t.Fatalf("expected only the 18:00 slot, got %v", got)
	}

	if got := record.MatchSlots("18:30", now); len(got) != 0 {
		t.Fatalf("expected no match for off-grid time, got %v", got)
	}
}

func TestMatchSlotsAdmitsSlotStartingNow(t *testing.T) {
	record := TableSlotRecord{
		TableID: "3",
		Date:    "2025-06-10",
		Slots:   map[Slot]bool{"13:00-14:00": true},
	}
	now := time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)

	if got := record.MatchSlots("", now); len(got) != 1 || got[0] != "13:00-14:00" {
		t.Fatalf("expected the slot starting right now admitted, got %v", got)
	}
	if got := record.MatchSlots("13:00", now); len(got) != 1 || got[0] != "13:00-14:00" {
		t.Fatalf("expected the requested slot starting right now admitted, got %v", got)
	}
}

func TestMatchSlotsRejectsPastRequestedTime(t *testing.T) {
	record := TableSlotRecord{
		TableID: "3",
		Date:    "2025-06-10",
		Slots:   map[Slot]bool{"12:00-13:00": true},
	}
	now := time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)

	if got := record.MatchSlots("12:00", now); len(got) != 0 {
		t.Fatalf("expected past slot filtered out, got %v", got)
	}
}
