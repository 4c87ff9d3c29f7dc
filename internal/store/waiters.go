package store

import (
	"context"

	"greentasty-reservation-services/internal/booking"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Waiters struct {
	DB *pgxpool.Pool
}

func scanWaiter(row pgx.Row) (*booking.WaiterLoad, error) {
	var (
		w      booking.WaiterLoad
		counts []int32
	)
	if err := row.Scan(&w.Email, &w.LocationID, &counts, &w.VisitorCount); err != nil {
		return nil, err
	}
	for i := 0; i < len(counts) && i < len(w.CustomerCount); i++ {
		w.CustomerCount[i] = int(counts[i])
	}
	return &w, nil
}

func (s *Waiters) Load(ctx context.Context, email string) (*booking.WaiterLoad, error) {
	row := s.DB.QueryRow(ctx, `
		select email, location_id, customer_counts, visitor_count
		from waiters where email = $1`, email)
	w, err := scanWaiter(row)
	if err == pgx.ErrNoRows {
		return nil, booking.NotFound(booking.ErrWaiterNotFound, "Waiter "+email+" was not found")
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Waiters) ByLocation(ctx context.Context, locationID string) ([]booking.WaiterLoad, error) {
	rows, err := s.DB.Query(ctx, `
		select email, location_id, customer_counts, visitor_count
		from waiters
		where location_id = $1
		order by email`, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.WaiterLoad
	for rows.Next() {
		w, err := scanWaiter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func (s *Waiters) AdjustCustomerCount(ctx context.Context, email string, weekdayIndex, delta int) error {
	// Postgres arrays are 1-based.
	tag, err := s.DB.Exec(ctx, `
		update waiters
		set customer_counts[$2] = greatest(customer_counts[$2] + $3, 0)
		where email = $1`,
		email, weekdayIndex+1, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return booking.NotFound(booking.ErrWaiterNotFound, "Waiter "+email+" was not found")
	}
	return nil
}

func (s *Waiters) AdjustVisitorCount(ctx context.Context, email string, delta int) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
		update waiters
		set visitor_count = greatest(visitor_count + $2, 0)
		where email = $1
		returning visitor_count`,
		email, delta).Scan(&count)
	if err == pgx.ErrNoRows {
		return 0, booking.NotFound(booking.ErrWaiterNotFound, "Waiter "+email+" was not found")
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}
