package booking

// WaiterLoad tracks how busy one waiter is: a count of scheduled customer
// reservations per ISO weekday (the counters recur weekly, they are not
// reset per calendar week) plus a same-day walk-in visitor count.
type WaiterLoad struct {
	Email         string
	LocationID    string
	CustomerCount [7]int
	VisitorCount  int
}

// LoadOn is the combined load used for assignment: the weekday's customer
// count, plus the visitor count when the date in question is today.
func (w *WaiterLoad) LoadOn(weekdayIndex int, sameDay bool) int {
	load := w.CustomerCount[weekdayIndex]
	if sameDay {
		load += w.VisitorCount
	}
	return load
}

// LeastBusyWaiter picks the waiter with the smallest combined load for the
// weekday. Ties break toward the lexicographically smallest email so the
// choice does not depend on store scan order.
func LeastBusyWaiter(waiters []WaiterLoad, weekdayIndex int, sameDay bool) (WaiterLoad, bool) {
	var best WaiterLoad
	found := false
	for _, w := range waiters {
		if !found {
			best = w
			found = true
			continue
		}
		load := w.LoadOn(weekdayIndex, sameDay)
		bestLoad := best.LoadOn(weekdayIndex, sameDay)
		if load < bestLoad || (load == bestLoad && w.Email < best.Email) {
			best = w
		}
	}
	return best, found
}
