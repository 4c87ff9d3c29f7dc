package store

import (
	"context"
	"encoding/json"
	"fmt"

	"greentasty-reservation-services/internal/booking"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Tables struct {
	DB *pgxpool.Pool
}

// Reserve flips the slot to reserved for every table inside one
// transaction, guarded on the current value so concurrent bookings of the
// same slot cannot both win.
func (s *Tables) Reserve(ctx context.Context, locationID, date string, slot booking.Slot, tableIDs []string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, tableID := range tableIDs {
		tag, err := tx.Exec(ctx, `
			update table_slots
			set slots = jsonb_set(slots, array[$4], 'false'::jsonb)
			where location_id = $1 and table_id = $2 and date = $3
			  and (slots ->> $4)::boolean is true`,
			locationID, tableID, date, string(slot))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return s.reserveFailure(ctx, locationID, tableID, date, slot)
		}
	}
	return tx.Commit(ctx)
}

// reserveFailure distinguishes a missing slot from a lost race.
func (s *Tables) reserveFailure(ctx context.Context, locationID, tableID, date string, slot booking.Slot) error {
	var hasSlot bool
	err := s.DB.QueryRow(ctx, `
		select slots ? $4
		from table_slots
		where location_id = $1 and table_id = $2 and date = $3`,
		locationID, tableID, date, string(slot)).Scan(&hasSlot)
	if err == pgx.ErrNoRows || (err == nil && !hasSlot) {
		return booking.NotFound(booking.ErrTimeSlotNotFound,
			fmt.Sprintf("table %s has no slot %s on %s", tableID, slot, date))
	}
	if err != nil {
		return err
	}
	return booking.Conflict(booking.ErrTableAlreadyReserved,
		fmt.Sprintf("table %s is already reserved for %s on %s", tableID, slot, date))
}

func (s *Tables) Free(ctx context.Context, locationID, date string, slot booking.Slot, tableIDs []string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, tableID := range tableIDs {
		tag, err := tx.Exec(ctx, `
			update table_slots
			set slots = jsonb_set(slots, array[$4], 'true'::jsonb)
			where location_id = $1 and table_id = $2 and date = $3 and slots ? $4`,
			locationID, tableID, date, string(slot))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return booking.NotFound(booking.ErrTimeSlotNotFound,
				fmt.Sprintf("table %s has no slot %s on %s", tableID, slot, date))
		}
	}
	return tx.Commit(ctx)
}

func (s *Tables) ByLocationDate(ctx context.Context, locationID, date string, minGuests int) ([]booking.TableSlotRecord, error) {
	rows, err := s.DB.Query(ctx, `
		select table_id, location_id, date, capacity, slots
		from table_slots
		where location_id = $1 and date = $2 and capacity >= $3
		order by table_id`,
		locationID, date, minGuests)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.TableSlotRecord
	for rows.Next() {
		var (
			record booking.TableSlotRecord
			slots  []byte
		)
		if err := rows.Scan(&record.TableID, &record.LocationID, &record.Date, &record.Capacity, &slots); err != nil {
			return nil, err
		}
		raw := map[string]bool{}
		if err := json.Unmarshal(slots, &raw); err != nil {
			return nil, fmt.Errorf("decode slots for table %s: %w", record.TableID, err)
		}
		record.Slots = make(map[booking.Slot]bool, len(raw))
		for slot, available := range raw {
			record.Slots[booking.Slot(slot)] = available
		}
		out = append(out, record)
	}
	return out, rows.Err()
}
