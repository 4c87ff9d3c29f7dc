package store

import (
	"context"

	"greentasty-reservation-services/internal/reports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRows struct {
	DB *pgxpool.Pool
}

const reportColumns = `waiter_email, location_id, date, orders_processed, working_hours,
	slots, service_ratings, min_service_rating, cuisine_ratings, min_cuisine_rating, revenue`

func scanReportRow(row pgx.Row) (*reports.Row, error) {
	var r reports.Row
	err := row.Scan(&r.WaiterEmail, &r.LocationID, &r.Date, &r.OrdersProcessed, &r.WorkingHours,
		&r.Slots, &r.ServiceRatings, &r.MinServiceRate, &r.CuisineRatings, &r.MinCuisineRate, &r.Revenue)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReportRows) Get(ctx context.Context, waiterEmail, date string) (*reports.Row, error) {
	row := s.DB.QueryRow(ctx,
		`select `+reportColumns+` from report_rows where waiter_email = $1 and date = $2`,
		waiterEmail, date)
	r, err := scanReportRow(row)
	if err == pgx.ErrNoRows {
		return nil, reports.ErrRowNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReportRows) Put(ctx context.Context, r *reports.Row) error {
	_, err := s.DB.Exec(ctx, `
		insert into report_rows
			(waiter_email, location_id, date, orders_processed, working_hours,
			 slots, service_ratings, min_service_rating, cuisine_ratings, min_cuisine_rating, revenue)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		on conflict (waiter_email, date) do update
		set orders_processed = excluded.orders_processed,
		    working_hours = excluded.working_hours,
		    slots = excluded.slots,
		    service_ratings = excluded.service_ratings,
		    min_service_rating = excluded.min_service_rating,
		    cuisine_ratings = excluded.cuisine_ratings,
		    min_cuisine_rating = excluded.min_cuisine_rating,
		    revenue = excluded.revenue`,
		r.WaiterEmail, r.LocationID, r.Date, r.OrdersProcessed, r.WorkingHours,
		r.Slots, r.ServiceRatings, r.MinServiceRate, r.CuisineRatings, r.MinCuisineRate, r.Revenue)
	return err
}

func (s *ReportRows) ListByWaiter(ctx context.Context, waiterEmail, fromDate, toDate string) ([]reports.Row, error) {
	rows, err := s.DB.Query(ctx, `
		select `+reportColumns+`
		from report_rows
		where waiter_email = $1 and date between $2 and $3
		order by date`,
		waiterEmail, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return collectReportRows(rows)
}

func (s *ReportRows) ListByLocation(ctx context.Context, locationID, fromDate, toDate string) ([]reports.Row, error) {
	rows, err := s.DB.Query(ctx, `
		select `+reportColumns+`
		from report_rows
		where location_id = $1 and date between $2 and $3
		order by waiter_email, date`,
		locationID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return collectReportRows(rows)
}

func collectReportRows(rows pgx.Rows) ([]reports.Row, error) {
	defer rows.Close()
	var out []reports.Row
	for rows.Next() {
		r, err := scanReportRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}
