package store

import (
	"context"

	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/internal/catalog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dishes struct {
	DB *pgxpool.Pool
}

// dishQuery resolves effective availability: a location stop-list entry
// overrides the dish's base flag.
const dishQuery = `
	select d.id, d.name, d.description, d.price, d.weight, d.image_url, d.is_popular,
	       case when s.dish_id is not null then not s.on_stop else d.is_available end
	from dishes d
	left join dish_stop_list s on s.dish_id = d.id and s.location_id = $1`

func scanDish(row pgx.Row) (*catalog.Dish, error) {
	var d catalog.Dish
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.Weight, &d.ImageURL,
		&d.IsPopular, &d.Available)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Dishes) Dish(ctx context.Context, dishID, locationID string) (*catalog.Dish, error) {
	row := s.DB.QueryRow(ctx, dishQuery+` where d.id = $2`, locationID, dishID)
	d, err := scanDish(row)
	if err == pgx.ErrNoRows {
		return nil, booking.NotFound(booking.ErrDishNotFound, "Dish "+dishID+" was not found")
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Dishes) List(ctx context.Context, locationID string) ([]catalog.Dish, error) {
	rows, err := s.DB.Query(ctx, dishQuery+` order by d.is_popular desc, d.name`, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Dish
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}
