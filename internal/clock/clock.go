package clock

import "time"

// Clock supplies the current time in a location's configured zone. The
// reconciler and the booking guards never call time.Now directly so tests
// can pin the clock.
type Clock interface {
	Now(timezone string) time.Time
}

type System struct{}

func (System) Now(timezone string) time.Time {
	return time.Now().In(Zone(timezone))
}

// Zone resolves an IANA zone name, falling back to UTC when the name is
// empty or unknown.
func Zone(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Fixed always reports the same instant, shifted into the requested zone.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now(timezone string) time.Time {
	return f.Instant.In(Zone(timezone))
}
