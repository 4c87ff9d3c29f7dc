package store

import (
	"context"

	"greentasty-reservation-services/internal/booking"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Locations struct {
	DB *pgxpool.Pool
}

func (s *Locations) ZoneOf(ctx context.Context, locationID string) (string, error) {
	var zone string
	err := s.DB.QueryRow(ctx,
		`select timezone from locations where id = $1`, locationID).Scan(&zone)
	if err == pgx.ErrNoRows {
		return "", booking.NotFound(booking.ErrLocationNotFound, "Location "+locationID+" was not found")
	}
	if err != nil {
		return "", err
	}
	return zone, nil
}

func (s *Locations) AddressOf(ctx context.Context, locationID string) (string, error) {
	var address string
	err := s.DB.QueryRow(ctx,
		`select address from locations where id = $1`, locationID).Scan(&address)
	if err == pgx.ErrNoRows {
		return "", booking.NotFound(booking.ErrLocationNotFound, "Location "+locationID+" was not found")
	}
	if err != nil {
		return "", err
	}
	return address, nil
}
