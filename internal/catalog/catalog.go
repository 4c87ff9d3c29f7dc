// Package catalog exposes the dish menu: dish details, pricing and the
// per-location "on stop" availability override.
package catalog

import "context"

type Dish struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Weight      string  `json:"weight,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	IsPopular   bool    `json:"isPopular"`
	Available   bool    `json:"isAvailable"`
}

type Catalog interface {
	// Dish returns the dish by id, with Available resolved for the given
	// location (the location's stop list overrides the base flag).
	Dish(ctx context.Context, dishID, locationID string) (*Dish, error)
	// List returns the menu for a location, most popular first.
	List(ctx context.Context, locationID string) ([]Dish, error)
}
