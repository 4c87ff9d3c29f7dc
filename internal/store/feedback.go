package store

import (
	"context"

	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/internal/feedback"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Feedbacks struct {
	DB *pgxpool.Pool
}

const feedbackColumns = `id, reservation_id, location_id, waiter_email, author,
	service_rating, service_comment, cuisine_rating, cuisine_comment, date`

func scanFeedback(row pgx.Row) (*feedback.Feedback, error) {
	var f feedback.Feedback
	err := row.Scan(&f.ID, &f.ReservationID, &f.LocationID, &f.WaiterEmail, &f.Author,
		&f.ServiceRating, &f.ServiceComment, &f.CuisineRating, &f.CuisineComment, &f.Date)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Feedbacks) Get(ctx context.Context, id string) (*feedback.Feedback, error) {
	row := s.DB.QueryRow(ctx, `select `+feedbackColumns+` from feedbacks where id = $1`, id)
	f, err := scanFeedback(row)
	if err == pgx.ErrNoRows {
		return nil, booking.NotFound(booking.ErrFeedbackNotFound, "Feedback "+id+" was not found")
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Feedbacks) ByReservation(ctx context.Context, reservationID string) (*feedback.Feedback, error) {
	row := s.DB.QueryRow(ctx,
		`select `+feedbackColumns+` from feedbacks where reservation_id = $1`, reservationID)
	f, err := scanFeedback(row)
	if err == pgx.ErrNoRows {
		return nil, booking.NotFound(booking.ErrFeedbackNotFound,
			"no feedback exists for reservation "+reservationID)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Feedbacks) Create(ctx context.Context, f *feedback.Feedback) error {
	_, err := s.DB.Exec(ctx, `
		insert into feedbacks
			(id, reservation_id, location_id, waiter_email, author,
			 service_rating, service_comment, cuisine_rating, cuisine_comment, date)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		f.ID, f.ReservationID, f.LocationID, f.WaiterEmail, f.Author,
		f.ServiceRating, f.ServiceComment, f.CuisineRating, f.CuisineComment, f.Date)
	return err
}

func (s *Feedbacks) Update(ctx context.Context, f *feedback.Feedback) error {
	tag, err := s.DB.Exec(ctx, `
		update feedbacks
		set service_rating = $2, service_comment = $3, cuisine_rating = $4, cuisine_comment = $5
		where id = $1`,
		f.ID, f.ServiceRating, f.ServiceComment, f.CuisineRating, f.CuisineComment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return booking.NotFound(booking.ErrFeedbackNotFound, "Feedback "+f.ID+" was not found")
	}
	return nil
}
