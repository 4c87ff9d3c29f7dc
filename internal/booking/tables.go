package booking

import (
	"sort"
	"time"
)

// TableSlotRecord is the availability ledger entry for one table on one
// calendar date: a capacity plus a slot-string to still-available map.
type TableSlotRecord struct {
	TableID    string
	LocationID string
	Date       string
	Capacity   int
	Slots      map[Slot]bool
}

// AvailableTable is one findAvailableTables result row: the table plus the
// subset of its slots that matched the query, sorted ascending.
type AvailableTable struct {
	TableID    string   `json:"tableNumber"`
	LocationID string   `json:"locationId"`
	Capacity   int      `json:"capacity"`
	Date       string   `json:"date"`
	Slots      []Slot   `json:"availableSlots"`
}

// MatchSlots filters the record down to slots that are available, starting
// no earlier than now, and, when requested is non-empty, starting exactly
// at the requested time. Results come back sorted.
func (t *TableSlotRecord) MatchSlots(requested string, now time.Time) []Slot {
	loc := now.Location()

	var requestedAt time.Time
	if requested != "" {
		at, err := Slot(requested + "-" + requested).Start(t.Date, loc)
		if err != nil {
			return nil
		}
		requestedAt = at
	}

	matched := make([]Slot, 0, len(t.Slots))
	for slot, available := range t.Slots {
		if !available {
			continue
		}
		start, err := slot.Start(t.Date, loc)
		if err != nil {
			continue
		}
		if requested != "" {
			if start.Equal(requestedAt) && !start.Before(now) {
				matched = append(matched, slot)
			}
		} else if !start.Before(now) {
			matched = append(matched, slot)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i] < matched[j] })
	return matched
}
