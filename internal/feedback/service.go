package feedback

import (
	"context"

	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/internal/clock"
	"greentasty-reservation-services/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Feedbacks    Store
	Reservations booking.ReservationStore
	Locations    booking.LocationDirectory
	Publisher    events.Publisher
	Clock        clock.Clock
	Logger       *zap.Logger

	NewID func() string
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

type PostRequest struct {
	ReservationID  string
	Author         string
	ServiceRating  float64
	ServiceComment string
	CuisineRating  float64
	CuisineComment string
}

type EditRequest struct {
	ServiceRating  float64
	ServiceComment string
	CuisineRating  float64
	CuisineComment string
}

// Post records the review for a reservation awaiting one and finishes the
// reservation. A reservation takes exactly one review.
func (s *Service) Post(ctx context.Context, req PostRequest) (*Feedback, error) {
	if err := validateRatings(req.ServiceRating, req.CuisineRating, req.ServiceComment, req.CuisineComment); err != nil {
		return nil, err
	}

	r, err := s.Reservations.Get(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if r.Status != booking.StatusPendingReview {
		return nil, booking.Conflict(booking.ErrConflict,
			"Reservation "+req.ReservationID+" is not awaiting a review")
	}
	if existing, err := s.Feedbacks.ByReservation(ctx, req.ReservationID); err == nil && existing != nil {
		return nil, booking.Conflict(booking.ErrFeedbackAlreadyExists,
			"feedback already exists for reservation "+req.ReservationID)
	} else if err != nil && !booking.IsCode(err, booking.ErrFeedbackNotFound) {
		return nil, err
	}

	zone, err := s.Locations.ZoneOf(ctx, r.LocationID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now(zone)

	f := &Feedback{
		ID:             s.newID(),
		ReservationID:  r.ID,
		LocationID:     r.LocationID,
		WaiterEmail:    r.WaiterEmail,
		Author:         req.Author,
		ServiceRating:  req.ServiceRating,
		ServiceComment: req.ServiceComment,
		CuisineRating:  req.CuisineRating,
		CuisineComment: req.CuisineComment,
		Date:           now.Format(booking.DateLayout),
	}
	if err := s.Feedbacks.Create(ctx, f); err != nil {
		return nil, err
	}

	if err := s.Reservations.UpdateStatus(ctx, r.ID, booking.StatusPendingReview, booking.StatusFinished); err != nil {
		return nil, err
	}
	r.Status = booking.StatusFinished
	r.FeedbackID = f.ID
	if err := s.Reservations.Update(ctx, r, booking.StatusFinished); err != nil {
		s.Logger.Warn("linking feedback to reservation failed",
			zap.String("reservation", r.ID), zap.String("feedback", f.ID), zap.Error(err))
	}

	event := events.FeedbackPosted{
		FeedbackID:    f.ID,
		ReservationID: r.ID,
		WaiterEmail:   r.WaiterEmail,
		LocationID:    r.LocationID,
		Date:          r.Date,
		ServiceRating: f.ServiceRating,
		CuisineRating: f.CuisineRating,
	}
	if err := s.Publisher.Publish(ctx, events.RouteFeedbackPosted, event); err != nil {
		s.Logger.Error("publishing feedback event failed",
			zap.String("feedback", f.ID), zap.Error(err))
	}
	return f, nil
}

// Edit replaces the ratings of an existing review. The old values travel
// with the event so the aggregator can retract them.
func (s *Service) Edit(ctx context.Context, feedbackID, author string, req EditRequest) (*Feedback, error) {
	if err := validateRatings(req.ServiceRating, req.CuisineRating, req.ServiceComment, req.CuisineComment); err != nil {
		return nil, err
	}

	f, err := s.Feedbacks.Get(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if f.Author != author {
		return nil, booking.Unauthorized("only the original author can edit this feedback")
	}

	// The correction must land on the same statistics row the posting
	// credited, which is keyed by the reservation date.
	r, err := s.Reservations.Get(ctx, f.ReservationID)
	if err != nil {
		return nil, err
	}

	event := events.FeedbackUpdated{
		FeedbackID:       f.ID,
		ReservationID:    f.ReservationID,
		WaiterEmail:      f.WaiterEmail,
		LocationID:       f.LocationID,
		Date:             r.Date,
		OldServiceRating: f.ServiceRating,
		OldCuisineRating: f.CuisineRating,
		NewServiceRating: req.ServiceRating,
		NewCuisineRating: req.CuisineRating,
	}

	f.ServiceRating = req.ServiceRating
	f.ServiceComment = req.ServiceComment
	f.CuisineRating = req.CuisineRating
	f.CuisineComment = req.CuisineComment
	if err := s.Feedbacks.Update(ctx, f); err != nil {
		return nil, err
	}

	if err := s.Publisher.Publish(ctx, events.RouteFeedbackUpdated, event); err != nil {
		s.Logger.Error("publishing feedback update event failed",
			zap.String("feedback", f.ID), zap.Error(err))
	}
	return f, nil
}

// ForReservation returns the review attached to a reservation.
func (s *Service) ForReservation(ctx context.Context, reservationID string) (*Feedback, error) {
	f, err := s.Feedbacks.ByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return f, nil
}
