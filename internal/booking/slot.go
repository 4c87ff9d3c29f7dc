package booking

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-date form used across reservations and
	// slot records, always local to the owning location's zone.
	DateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Slot is a half-open "HH:MM-HH:MM" interval from a location's slot grid.
type Slot string

func MakeSlot(from, to string) Slot {
	return Slot(from + "-" + to)
}

func (s Slot) From() string {
	from, _, _ := strings.Cut(string(s), "-")
	return from
}

func (s Slot) To() string {
	_, to, _ := strings.Cut(string(s), "-")
	return to
}

func (s Slot) Valid() bool {
	from, to, found := strings.Cut(string(s), "-")
	if !found {
		return false
	}
	if _, err := time.Parse(timeLayout, from); err != nil {
		return false
	}
	if _, err := time.Parse(timeLayout, to); err != nil {
		return false
	}
	return from < to
}

// Window resolves the slot against a calendar date into concrete start and
// end instants in the given zone.
func (s Slot) Window(date string, loc *time.Location) (start, end time.Time, err error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	from, err := time.Parse(timeLayout, s.From())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse slot %q: %w", s, err)
	}
	to, err := time.Parse(timeLayout, s.To())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse slot %q: %w", s, err)
	}
	start = day.Add(time.Duration(from.Hour())*time.Hour + time.Duration(from.Minute())*time.Minute)
	end = day.Add(time.Duration(to.Hour())*time.Hour + time.Duration(to.Minute())*time.Minute)
	return start, end, nil
}

// Start resolves only the slot's opening instant.
func (s Slot) Start(date string, loc *time.Location) (time.Time, error) {
	start, _, err := s.Window(date, loc)
	return start, err
}
