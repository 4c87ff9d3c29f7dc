package feedback

import (
	"context"
	"testing"
	"time"

	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/internal/clock"
	"greentasty-reservation-services/internal/events"

	"go.uber.org/zap"
)

type memFeedbacks struct {
	items map[string]*Feedback
}

func newMemFeedbacks() *memFeedbacks {
	return &memFeedbacks{items: map[string]*Feedback{}}
}

func (m *memFeedbacks) Get(_ context.Context, id string) (*Feedback, error) {
	f, ok := m.items[id]
	if !ok {
		return nil, booking.NotFound(booking.ErrFeedbackNotFound, "feedback not found")
	}
	copied := *f
	return &copied, nil
}

func (m *memFeedbacks) ByReservation(_ context.Context, reservationID string) (*Feedback, error) {
	for _, f := range m.items {
		if f.ReservationID == reservationID {
			copied := *f
			return &copied, nil
		}
	}
	return nil, booking.NotFound(booking.ErrFeedbackNotFound, "feedback not found")
}

func (m *memFeedbacks) Create(_ context.Context, f *Feedback) error {
	copied := *f
	m.items[f.ID] = &copied
	return nil
}

func (m *memFeedbacks) Update(_ context.Context, f *Feedback) error {
	if _, ok := m.items[f.ID]; !ok {
		return booking.NotFound(booking.ErrFeedbackNotFound, "feedback not found")
	}
	copied := *f
	m.items[f.ID] = &copied
	return nil
}

type memReservations struct {
	items map[string]*booking.Reservation
}

func (m *memReservations) Get(_ context.Context, id string) (*booking.Reservation, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, booking.NotFound(booking.ErrReservationNotFound, "not found")
	}
	copied := *r
	return &copied, nil
}

func (m *memReservations) Create(context.Context, *booking.Reservation) error { return nil }

func (m *memReservations) Update(_ context.Context, r *booking.Reservation, expected booking.Status) error {
	stored, ok := m.items[r.ID]
	if !ok || stored.Status != expected {
		return booking.Conflict(booking.ErrConflict, "status moved")
	}
	copied := *r
	m.items[r.ID] = &copied
	return nil
}

func (m *memReservations) UpdateStatus(_ context.Context, id string, from, to booking.Status) error {
	r, ok := m.items[id]
	if !ok {
		return booking.NotFound(booking.ErrReservationNotFound, "not found")
	}
	if r.Status != from {
		return booking.Conflict(booking.ErrConflict, "status moved")
	}
	r.Status = to
	return nil
}

func (m *memReservations) ListByCustomer(context.Context, string) ([]booking.Reservation, error) {
	return nil, nil
}

func (m *memReservations) ListByCustomerAndStatus(context.Context, string, booking.Status) ([]booking.Reservation, error) {
	return nil, nil
}

func (m *memReservations) ListByWaiter(context.Context, string, booking.WaiterFilter) ([]booking.Reservation, error) {
	return nil, nil
}

func (m *memReservations) ListOpen(context.Context) ([]booking.Reservation, error) { return nil, nil }

type memLocations struct{}

func (memLocations) ZoneOf(context.Context, string) (string, error)    { return "UTC", nil }
func (memLocations) AddressOf(context.Context, string) (string, error) { return "", nil }

type capturedEvent struct {
	routingKey string
	payload    any
}

type capturingPublisher struct {
	events []capturedEvent
}

func (p *capturingPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.events = append(p.events, capturedEvent{routingKey: routingKey, payload: payload})
	return nil
}

func newTestService(reservations *memReservations) (*Service, *memFeedbacks, *capturingPublisher) {
	feedbacks := newMemFeedbacks()
	publisher := &capturingPublisher{}
	svc := &Service{
		Feedbacks:    feedbacks,
		Reservations: reservations,
		Locations:    memLocations{},
		Publisher:    publisher,
		Clock:        clock.Fixed{Instant: time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)},
		Logger:       zap.NewNop(),
		NewID:        func() string { return "fb-1" },
	}
	return svc, feedbacks, publisher
}

func pendingReservation() *memReservations {
	return &memReservations{items: map[string]*booking.Reservation{
		"res-1": {
			ID: "res-1", LocationID: "loc-1", Status: booking.StatusPendingReview,
			Date: "2025-06-10", TimeSlot: "18:00-19:00",
			CustomerEmail: "kate@example.com", WaiterEmail: "anna@greentasty.com",
		},
	}}
}

func TestPostFinishesReservation(t *testing.T) {
	reservations := pendingReservation()
	svc, _, publisher := newTestService(reservations)

	f, err := svc.Post(context.Background(), PostRequest{
		ReservationID: "res-1",
		Author:        "kate@example.com",
		ServiceRating: 4, ServiceComment: "Attentive",
		CuisineRating: 5,
	})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if f.Date != "2025-06-12" {
		t.Fatalf("expected posting date 2025-06-12, got %s", f.Date)
	}

	r := reservations.items["res-1"]
	if r.Status != booking.StatusFinished {
		t.Fatalf("expected FINISHED, got %s", r.Status)
	}
	if r.FeedbackID != f.ID {
		t.Fatal("expected the feedback linked to the reservation")
	}

	if len(publisher.events) != 1 || publisher.events[0].routingKey != events.RouteFeedbackPosted {
		t.Fatalf("expected one feedback.posted event, got %+v", publisher.events)
	}
	posted := publisher.events[0].payload.(events.FeedbackPosted)
	// The statistics row is keyed by the visit date, not the posting date.
	if posted.Date != "2025-06-10" {
		t.Fatalf("expected the event dated by the reservation, got %s", posted.Date)
	}
	if posted.ServiceRating != 4 || posted.CuisineRating != 5 {
		t.Fatalf("unexpected ratings in event: %+v", posted)
	}
}

func TestPostRejectsReservationNotAwaitingReview(t *testing.T) {
	reservations := pendingReservation()
	reservations.items["res-1"].Status = booking.StatusInProgress
	svc, _, _ := newTestService(reservations)

	_, err := svc.Post(context.Background(), PostRequest{
		ReservationID: "res-1", Author: "kate@example.com", ServiceRating: 4,
	})
	if !booking.IsCode(err, booking.ErrConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestPostRejectsDuplicate(t *testing.T) {
	svc, feedbacks, _ := newTestService(pendingReservation())
	feedbacks.items["fb-0"] = &Feedback{ID: "fb-0", ReservationID: "res-1"}

	_, err := svc.Post(context.Background(), PostRequest{
		ReservationID: "res-1", Author: "kate@example.com", ServiceRating: 4,
	})
	if !booking.IsCode(err, booking.ErrFeedbackAlreadyExists) {
		t.Fatalf("expected FEEDBACK_ALREADY_EXISTS, got %v", err)
	}
}

func TestPostValidation(t *testing.T) {
	cases := []struct {
		name string
		req  PostRequest
	}{
		{"no ratings", PostRequest{ReservationID: "res-1", Author: "kate@example.com"}},
		{"rating out of range", PostRequest{ReservationID: "res-1", Author: "kate@example.com", ServiceRating: 6}},
		{"comment without rating", PostRequest{ReservationID: "res-1", Author: "kate@example.com", ServiceRating: 4, CuisineComment: "Cold soup"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newTestService(pendingReservation())
			if _, err := svc.Post(context.Background(), tc.req); !booking.IsCode(err, booking.ErrValidation) {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}

func TestEditPublishesOldAndNewRatings(t *testing.T) {
	svc, feedbacks, publisher := newTestService(pendingReservation())
	feedbacks.items["fb-1"] = &Feedback{
		ID: "fb-1", ReservationID: "res-1", LocationID: "loc-1",
		WaiterEmail: "anna@greentasty.com", Author: "kate@example.com",
		ServiceRating: 2, CuisineRating: 3, Date: "2025-06-12",
	}

	f, err := svc.Edit(context.Background(), "fb-1", "kate@example.com", EditRequest{
		ServiceRating: 5, CuisineRating: 4, ServiceComment: "Much better on reflection",
	})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if f.ServiceRating != 5 || f.CuisineRating != 4 {
		t.Fatalf("unexpected ratings after edit: %+v", f)
	}

	if len(publisher.events) != 1 || publisher.events[0].routingKey != events.RouteFeedbackUpdated {
		t.Fatalf("expected one feedback.updated event, got %+v", publisher.events)
	}
	updated := publisher.events[0].payload.(events.FeedbackUpdated)
	if updated.OldServiceRating != 2 || updated.OldCuisineRating != 3 {
		t.Fatalf("expected the old ratings retained in the event, got %+v", updated)
	}
	if updated.NewServiceRating != 5 || updated.NewCuisineRating != 4 {
		t.Fatalf("expected the new ratings in the event, got %+v", updated)
	}
	if updated.Date != "2025-06-10" {
		t.Fatalf("expected the event dated by the reservation, got %s", updated.Date)
	}
}

func TestEditRejectsOtherAuthors(t *testing.T) {
	svc, feedbacks, _ := newTestService(pendingReservation())
	feedbacks.items["fb-1"] = &Feedback{
		ID: "fb-1", ReservationID: "res-1", Author: "kate@example.com", ServiceRating: 2,
	}

	_, err := svc.Edit(context.Background(), "fb-1", "mallory@example.com", EditRequest{ServiceRating: 1})
	if !booking.IsCode(err, booking.ErrNotAuthorized) {
		t.Fatalf("expected NOT_AUTHORIZED, got %v", err)
	}
}
