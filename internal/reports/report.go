package reports

import (
	"context"
	"time"

	"greentasty-reservation-services/internal/booking"
)

// Reports answers performance queries over the accumulated rows. Deltas
// compare the requested period with the equal-length period right before
// it.
type Reports struct {
	Rows RowStore
}

type WaiterSummary struct {
	LocationID         string  `json:"locationId"`
	WaiterEmail        string  `json:"waiterEmail"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	WorkingHours       float64 `json:"workingHours"`
	WorkingHoursDelta  float64 `json:"workingHoursDeltaPercent"`
	OrdersProcessed    int     `json:"ordersProcessed"`
	OrdersDelta        float64 `json:"ordersDeltaPercent"`
	AvgServiceRating   float64 `json:"avgServiceRating"`
	MinServiceRating   float64 `json:"minServiceRating"`
	ServiceRatingDelta float64 `json:"avgServiceRatingDeltaPercent"`
}

type LocationSummary struct {
	LocationID         string  `json:"locationId"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	OrdersProcessed    int     `json:"ordersProcessed"`
	OrdersDelta        float64 `json:"ordersDeltaPercent"`
	AvgCuisineRating   float64 `json:"avgCuisineRating"`
	MinCuisineRating   float64 `json:"minCuisineRating"`
	CuisineRatingDelta float64 `json:"avgCuisineRatingDeltaPercent"`
	Revenue            float64 `json:"revenue"`
	RevenueDelta       float64 `json:"revenueDeltaPercent"`
}

// fold is the collapsed view of a set of rows: sums for counters, a
// concatenation for rating lists and a min-of-mins for the minimums.
type fold struct {
	locationID      string
	ordersProcessed int
	workingHours    float64
	serviceRatings  []float64
	minService      float64
	cuisineRatings  []float64
	minCuisine      float64
	revenue         float64
}

func foldRows(rows []Row) fold {
	var f fold
	for _, row := range rows {
		if f.locationID == "" {
			f.locationID = row.LocationID
		}
		f.ordersProcessed += row.OrdersProcessed
		f.workingHours += row.WorkingHours
		f.serviceRatings = append(f.serviceRatings, row.ServiceRatings...)
		f.cuisineRatings = append(f.cuisineRatings, row.CuisineRatings...)
		f.revenue += row.Revenue
		if row.MinServiceRate > 0 && (f.minService == 0 || row.MinServiceRate < f.minService) {
			f.minService = row.MinServiceRate
		}
		if row.MinCuisineRate > 0 && (f.minCuisine == 0 || row.MinCuisineRate < f.minCuisine) {
			f.minCuisine = row.MinCuisineRate
		}
	}
	return f
}

// WaiterReport summarizes one waiter over [fromDate, toDate].
func (r *Reports) WaiterReport(ctx context.Context, waiterEmail, fromDate, toDate string) (*WaiterSummary, error) {
	rows, err := r.Rows.ListByWaiter(ctx, waiterEmail, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	current := foldRows(rows)

	prevFrom, prevTo, err := previousPeriod(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	prevRows, err := r.Rows.ListByWaiter(ctx, waiterEmail, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	previous := foldRows(prevRows)

	return &WaiterSummary{
		LocationID:         current.locationID,
		WaiterEmail:        waiterEmail,
		StartDate:          fromDate,
		EndDate:            toDate,
		WorkingHours:       current.workingHours,
		WorkingHoursDelta:  deltaPercent(current.workingHours, previous.workingHours),
		OrdersProcessed:    current.ordersProcessed,
		OrdersDelta:        deltaPercent(float64(current.ordersProcessed), float64(previous.ordersProcessed)),
		AvgServiceRating:   round1(avgOf(current.serviceRatings)),
		MinServiceRating:   current.minService,
		ServiceRatingDelta: deltaPercent(avgOf(current.serviceRatings), avgOf(previous.serviceRatings)),
	}, nil
}

// LocationReport folds every waiter row of a location over the period.
func (r *Reports) LocationReport(ctx context.Context, locationID, fromDate, toDate string) (*LocationSummary, error) {
	rows, err := r.Rows.ListByLocation(ctx, locationID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	current := foldRows(rows)

	prevFrom, prevTo, err := previousPeriod(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	prevRows, err := r.Rows.ListByLocation(ctx, locationID, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	previous := foldRows(prevRows)

	return &LocationSummary{
		LocationID:         locationID,
		StartDate:          fromDate,
		EndDate:            toDate,
		OrdersProcessed:    current.ordersProcessed,
		OrdersDelta:        deltaPercent(float64(current.ordersProcessed), float64(previous.ordersProcessed)),
		AvgCuisineRating:   round1(avgOf(current.cuisineRatings)),
		MinCuisineRating:   current.minCuisine,
		CuisineRatingDelta: deltaPercent(avgOf(current.cuisineRatings), avgOf(previous.cuisineRatings)),
		Revenue:            current.revenue,
		RevenueDelta:       deltaPercent(current.revenue, previous.revenue),
	}, nil
}

// RowsByWaiter exposes the raw rows for a waiter, for report rendering.
func (r *Reports) RowsByWaiter(ctx context.Context, waiterEmail, fromDate, toDate string) ([]Row, error) {
	return r.Rows.ListByWaiter(ctx, waiterEmail, fromDate, toDate)
}

// previousPeriod computes the equal-length stretch ending the day before
// fromDate.
func previousPeriod(fromDate, toDate string) (string, string, error) {
	from, err := time.Parse(booking.DateLayout, fromDate)
	if err != nil {
		return "", "", booking.Validation("invalid start date")
	}
	to, err := time.Parse(booking.DateLayout, toDate)
	if err != nil {
		return "", "", booking.Validation("invalid end date")
	}
	days := int(to.Sub(from).Hours()/24) + 1
	prevTo := from.AddDate(0, 0, -1)
	prevFrom := prevTo.AddDate(0, 0, -(days - 1))
	return prevFrom.Format(booking.DateLayout), prevTo.Format(booking.DateLayout), nil
}

// deltaPercent is the relative change in percent, one decimal. A zero
// previous value reports no delta.
func deltaPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round1((current - previous) / previous * 100)
}
