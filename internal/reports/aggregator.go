package reports

import (
	"context"
	"errors"

	"greentasty-reservation-services/internal/catalog"
	"greentasty-reservation-services/internal/events"

	"go.uber.org/zap"
)

// Aggregator folds reporting events into statistics rows. It is the only
// writer of rows; report queries only read them.
type Aggregator struct {
	Rows   RowStore
	Dishes catalog.Catalog
	Logger *zap.Logger
}

func (a *Aggregator) rowFor(ctx context.Context, waiterEmail, locationID, date string) (*Row, error) {
	row, err := a.Rows.Get(ctx, waiterEmail, date)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, ErrRowNotFound) {
		return nil, err
	}
	return &Row{WaiterEmail: waiterEmail, LocationID: locationID, Date: date}, nil
}

// ApplyCompletion credits a served reservation: one order, working hours
// for a newly served slot, and the pre-order revenue.
func (a *Aggregator) ApplyCompletion(ctx context.Context, ev events.ReservationCompleted) error {
	row, err := a.rowFor(ctx, ev.WaiterEmail, ev.LocationID, ev.Date)
	if err != nil {
		return err
	}

	row.OrdersProcessed++
	if !containsSlot(row.Slots, ev.TimeSlot) {
		row.Slots = append(row.Slots, ev.TimeSlot)
		row.WorkingHours += HoursPerSlot
	}

	for dishID, quantity := range ev.PreOrder {
		dish, err := a.Dishes.Dish(ctx, dishID, ev.LocationID)
		if err != nil {
			a.Logger.Warn("revenue skipped for unknown dish",
				zap.String("reservation", ev.ReservationID), zap.String("dish", dishID), zap.Error(err))
			continue
		}
		row.Revenue += dish.Price * float64(quantity)
	}
	return a.Rows.Put(ctx, row)
}

// ApplyFeedbackPosted appends a fresh rating pair.
func (a *Aggregator) ApplyFeedbackPosted(ctx context.Context, ev events.FeedbackPosted) error {
	row, err := a.rowFor(ctx, ev.WaiterEmail, ev.LocationID, ev.Date)
	if err != nil {
		return err
	}
	row.ServiceRatings, row.MinServiceRate = appendRating(row.ServiceRatings, row.MinServiceRate, ev.ServiceRating)
	row.CuisineRatings, row.MinCuisineRate = appendRating(row.CuisineRatings, row.MinCuisineRate, ev.CuisineRating)
	return a.Rows.Put(ctx, row)
}

// ApplyFeedbackUpdate retracts the old ratings and applies the corrected
// ones in their place.
func (a *Aggregator) ApplyFeedbackUpdate(ctx context.Context, ev events.FeedbackUpdated) error {
	row, err := a.rowFor(ctx, ev.WaiterEmail, ev.LocationID, ev.Date)
	if err != nil {
		return err
	}
	row.ServiceRatings, row.MinServiceRate = replaceRating(
		row.ServiceRatings, row.MinServiceRate, ev.OldServiceRating, ev.NewServiceRating)
	row.CuisineRatings, row.MinCuisineRate = replaceRating(
		row.CuisineRatings, row.MinCuisineRate, ev.OldCuisineRating, ev.NewCuisineRating)
	return a.Rows.Put(ctx, row)
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
