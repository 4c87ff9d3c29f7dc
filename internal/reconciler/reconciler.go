// Package reconciler advances open reservations through time: RESERVED
// bookings whose slot has begun move to IN_PROGRESS, and ones whose slot
// has ended move to PENDING_REVIEW with a completion event for the
// reporting pipeline.
package reconciler

import (
	"context"
	"time"

	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/internal/clock"
	"greentasty-reservation-services/internal/events"

	"go.uber.org/zap"
)

type Service struct {
	Reservations booking.ReservationStore
	Waiters      booking.WaiterStore
	Locations    booking.LocationDirectory
	Publisher    events.Publisher
	Clock        clock.Clock
	Logger       *zap.Logger
}

// Run reconciles once immediately, then on every tick until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.Logger.Info("status reconciler started", zap.Duration("interval", interval))
	s.Reconcile(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("status reconciler stopped")
			return
		case <-ticker.C:
			s.Reconcile(ctx)
		}
	}
}

// Reconcile runs a single pass over all open reservations. A failure on
// one reservation is logged and never aborts the rest of the scan.
func (s *Service) Reconcile(ctx context.Context) {
	open, err := s.Reservations.ListOpen(ctx)
	if err != nil {
		s.Logger.Error("listing open reservations failed", zap.Error(err))
		return
	}

	advanced := 0
	for i := range open {
		moved, err := s.reconcileOne(ctx, &open[i])
		if err != nil {
			s.Logger.Error("reconciling reservation failed",
				zap.String("reservation", open[i].ID), zap.Error(err))
			continue
		}
		if moved {
			advanced++
		}
	}
	if advanced > 0 {
		s.Logger.Info("reconcile pass finished",
			zap.Int("open", len(open)), zap.Int("advanced", advanced))
	}
}

func (s *Service) reconcileOne(ctx context.Context, r *booking.Reservation) (bool, error) {
	zone, err := s.Locations.ZoneOf(ctx, r.LocationID)
	if err != nil {
		return false, err
	}
	now := s.Clock.Now(zone)
	start, end, err := r.TimeSlot.Window(r.Date, clock.Zone(zone))
	if err != nil {
		return false, err
	}

	switch r.Status {
	case booking.StatusReserved:
		if !now.Before(start) && now.Before(end) {
			err := s.Reservations.UpdateStatus(ctx, r.ID, booking.StatusReserved, booking.StatusInProgress)
			return err == nil, err
		}
		if !now.Before(end) {
			// The whole window elapsed between passes, skip straight to
			// review.
			if err := s.Reservations.UpdateStatus(ctx, r.ID, booking.StatusReserved, booking.StatusPendingReview); err != nil {
				return false, err
			}
			return true, s.complete(ctx, r)
		}
	case booking.StatusInProgress:
		if !now.Before(end) {
			if err := s.Reservations.UpdateStatus(ctx, r.ID, booking.StatusInProgress, booking.StatusPendingReview); err != nil {
				return false, err
			}
			return true, s.complete(ctx, r)
		}
	}
	return false, nil
}

// complete releases the waiter's load for the finished visit and hands the
// reservation snapshot to the reporting pipeline.
func (s *Service) complete(ctx context.Context, r *booking.Reservation) error {
	if r.WalkIn() {
		if _, err := s.Waiters.AdjustVisitorCount(ctx, r.WaiterEmail, -1); err != nil {
			s.Logger.Warn("visitor count decrement failed",
				zap.String("waiter", r.WaiterEmail), zap.String("reservation", r.ID), zap.Error(err))
		}
	} else {
		weekday, err := r.WeekdayIndex()
		if err != nil {
			return err
		}
		if err := s.Waiters.AdjustCustomerCount(ctx, r.WaiterEmail, weekday, -1); err != nil {
			s.Logger.Warn("customer count decrement failed",
				zap.String("waiter", r.WaiterEmail), zap.String("reservation", r.ID), zap.Error(err))
		}
	}

	event := events.ReservationCompleted{
		ReservationID: r.ID,
		WaiterEmail:   r.WaiterEmail,
		CustomerEmail: r.CustomerEmail,
		VisitorID:     r.VisitorID,
		LocationID:    r.LocationID,
		Date:          r.Date,
		TimeSlot:      string(r.TimeSlot),
		TableIDs:      r.TableIDs,
		GuestsNumber:  r.GuestsNumber,
		PreOrder:      r.PreOrder,
	}
	return s.Publisher.Publish(ctx, events.RouteReservationCompleted, event)
}
