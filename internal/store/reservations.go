package store

import (
	"context"
	"encoding/json"
	"fmt"

	"greentasty-reservation-services/internal/booking"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Reservations struct {
	DB *pgxpool.Pool
}

const reservationColumns = `id, table_ids, location_id, status, date, time_slot, guests_number,
	pre_order, pre_order_state, feedback_id, customer_email, visitor_id, waiter_email`

func scanReservation(row pgx.Row) (*booking.Reservation, error) {
	var (
		r        booking.Reservation
		status   string
		timeSlot string
		preOrder []byte
	)
	err := row.Scan(&r.ID, &r.TableIDs, &r.LocationID, &status, &r.Date, &timeSlot, &r.GuestsNumber,
		&preOrder, &r.PreOrderState, &r.FeedbackID, &r.CustomerEmail, &r.VisitorID, &r.WaiterEmail)
	if err != nil {
		return nil, err
	}
	r.Status = booking.Status(status)
	r.TimeSlot = booking.Slot(timeSlot)
	r.PreOrder = map[string]int{}
	if len(preOrder) > 0 {
		if err := json.Unmarshal(preOrder, &r.PreOrder); err != nil {
			return nil, fmt.Errorf("decode pre_order for %s: %w", r.ID, err)
		}
	}
	return &r, nil
}

func (s *Reservations) Get(ctx context.Context, id string) (*booking.Reservation, error) {
	row := s.DB.QueryRow(ctx, `select `+reservationColumns+` from reservations where id = $1`, id)
	r, err := scanReservation(row)
	if err == pgx.ErrNoRows {
		return nil, booking.NotFound(booking.ErrReservationNotFound, "Reservation "+id+" was not found")
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Reservations) Create(ctx context.Context, r *booking.Reservation) error {
	preOrder, err := json.Marshal(r.PreOrder)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
		insert into reservations
			(id, table_ids, location_id, status, date, time_slot, guests_number,
			 pre_order, pre_order_state, feedback_id, customer_email, visitor_id, waiter_email)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		r.ID, r.TableIDs, r.LocationID, string(r.Status), r.Date, string(r.TimeSlot), r.GuestsNumber,
		preOrder, r.PreOrderState, r.FeedbackID, r.CustomerEmail, r.VisitorID, r.WaiterEmail)
	return err
}

func (s *Reservations) Update(ctx context.Context, r *booking.Reservation, expected booking.Status) error {
	preOrder, err := json.Marshal(r.PreOrder)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
		update reservations
		set table_ids = $3, status = $4, date = $5, time_slot = $6, guests_number = $7,
		    pre_order = $8, pre_order_state = $9, feedback_id = $10
		where id = $1 and status = $2`,
		r.ID, string(expected), r.TableIDs, string(r.Status), r.Date, string(r.TimeSlot),
		r.GuestsNumber, preOrder, r.PreOrderState, r.FeedbackID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return booking.Conflict(booking.ErrConflict,
			"Reservation "+r.ID+" was modified concurrently")
	}
	return nil
}

func (s *Reservations) UpdateStatus(ctx context.Context, id string, from, to booking.Status) error {
	tag, err := s.DB.Exec(ctx,
		`update reservations set status = $3 where id = $1 and status = $2`,
		id, string(from), string(to))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return booking.Conflict(booking.ErrConflict,
			"Reservation "+id+" is no longer in status "+string(from))
	}
	return nil
}

func (s *Reservations) ListByCustomer(ctx context.Context, email string) ([]booking.Reservation, error) {
	rows, err := s.DB.Query(ctx, `
		select `+reservationColumns+`
		from reservations
		where customer_email = $1
		order by date desc, time_slot desc`, email)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (s *Reservations) ListByCustomerAndStatus(ctx context.Context, email string, status booking.Status) ([]booking.Reservation, error) {
	rows, err := s.DB.Query(ctx, `
		select `+reservationColumns+`
		from reservations
		where customer_email = $1 and status = $2
		order by date desc, time_slot desc`, email, string(status))
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (s *Reservations) ListByWaiter(ctx context.Context, email string, filter booking.WaiterFilter) ([]booking.Reservation, error) {
	query := `select ` + reservationColumns + ` from reservations where waiter_email = $1`
	args := []any{email}
	if filter.Date != "" {
		args = append(args, filter.Date)
		query += fmt.Sprintf(" and date = $%d", len(args))
	}
	if filter.Time != "" {
		args = append(args, filter.Time)
		query += fmt.Sprintf(" and split_part(time_slot, '-', 1) = $%d", len(args))
	}
	if filter.TableID != "" {
		args = append(args, filter.TableID)
		query += fmt.Sprintf(" and $%d = any(table_ids)", len(args))
	}
	query += " order by date desc, time_slot desc"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (s *Reservations) ListOpen(ctx context.Context) ([]booking.Reservation, error) {
	rows, err := s.DB.Query(ctx, `
		select `+reservationColumns+`
		from reservations
		where status in ($1, $2)
		order by date, time_slot`,
		string(booking.StatusReserved), string(booking.StatusInProgress))
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]booking.Reservation, error) {
	defer rows.Close()
	var out []booking.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}
