package preorder

import (
	"context"
	"sort"

	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/internal/catalog"
	"greentasty-reservation-services/internal/clock"

	"go.uber.org/zap"
)

// MaxQuantityPerGuest caps how many units of a single dish each guest can
// pre-order.
const MaxQuantityPerGuest = 3

type Service struct {
	Reservations booking.ReservationStore
	Dishes       catalog.Catalog
	Locations    booking.LocationDirectory
	Clock        clock.Clock
	Logger       *zap.Logger
}

type CartItem struct {
	DishID   string  `json:"dishId"`
	Name     string  `json:"dishName"`
	Price    float64 `json:"dishPrice"`
	ImageURL string  `json:"dishImageUrl,omitempty"`
	Quantity int     `json:"dishQuantity"`
}

type Cart struct {
	ReservationID string     `json:"reservationId"`
	State         State      `json:"state"`
	Items         []CartItem `json:"dishItems"`
	TotalPrice    float64    `json:"totalPrice"`
}

// ReplaceCart swaps the whole pre-order at once and moves the cart into
// target. An empty item map clears the cart back to its initial state.
func (s *Service) ReplaceCart(ctx context.Context, reservationID string, items map[string]int, target State) (*Cart, error) {
	r, err := s.Reservations.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r.Status.Terminal() {
		return nil, booking.Conflict(booking.ErrAlreadyCancelledOrFinished,
			"Reservation "+reservationID+" is already cancelled or finished")
	}

	current := State(r.PreOrderState)
	if len(items) == 0 {
		// An empty map clears the cart back to its initial state from
		// wherever it currently sits; only the time guard applies.
		target = StateNone
	} else if err := ValidateTransition(current, target); err != nil {
		return nil, err
	}
	if GuardedTransition(current, target) || len(items) == 0 {
		if err := s.checkModificationLead(ctx, r); err != nil {
			return nil, err
		}
	}

	limit := r.GuestsNumber * MaxQuantityPerGuest
	for dishID, quantity := range items {
		if quantity <= 0 {
			return nil, booking.Validation("dish quantity must be at least 1")
		}
		if quantity > limit {
			return nil, booking.Conflict(booking.ErrPreOrderQuantityLimit,
				"dish quantity exceeds the limit for "+dishID)
		}
		if _, err := s.Dishes.Dish(ctx, dishID, r.LocationID); err != nil {
			return nil, err
		}
	}

	r.PreOrder = items
	r.PreOrderState = string(target)
	if err := s.Reservations.Update(ctx, r, r.Status); err != nil {
		return nil, err
	}
	return s.buildCart(ctx, r)
}

// AddDish puts one more unit of a dish into the cart and reopens it as
// unsubmitted. Dishes stopped for the reservation's location are rejected.
func (s *Service) AddDish(ctx context.Context, reservationID, dishID string) (*Cart, error) {
	r, err := s.Reservations.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	switch r.Status {
	case booking.StatusCancelled, booking.StatusFinished, booking.StatusPendingReview:
		return nil, booking.Conflict(booking.ErrAlreadyCancelledOrFinished,
			"dishes can no longer be added to reservation "+reservationID)
	}

	dish, err := s.Dishes.Dish(ctx, dishID, r.LocationID)
	if err != nil {
		return nil, err
	}
	if !dish.Available {
		return nil, booking.Conflict(booking.ErrDishOnStop, dish.Name+" is currently on stop")
	}

	quantity := r.PreOrder[dishID] + 1
	if quantity > r.GuestsNumber*MaxQuantityPerGuest {
		return nil, booking.Conflict(booking.ErrPreOrderQuantityLimit,
			"dish quantity exceeds the limit for "+dishID)
	}
	if r.PreOrder == nil {
		r.PreOrder = map[string]int{}
	}
	r.PreOrder[dishID] = quantity
	r.PreOrderState = string(StateUnsubmitted)
	if err := s.Reservations.Update(ctx, r, r.Status); err != nil {
		return nil, err
	}
	return s.buildCart(ctx, r)
}

// CartFor resolves the stored dish-id quantities into a detailed cart.
func (s *Service) CartFor(ctx context.Context, reservationID string) (*Cart, error) {
	r, err := s.Reservations.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return s.buildCart(ctx, r)
}

func (s *Service) buildCart(ctx context.Context, r *booking.Reservation) (*Cart, error) {
	cart := &Cart{
		ReservationID: r.ID,
		State:         State(r.PreOrderState),
		Items:         make([]CartItem, 0, len(r.PreOrder)),
	}
	for dishID, quantity := range r.PreOrder {
		dish, err := s.Dishes.Dish(ctx, dishID, r.LocationID)
		if err != nil {
			s.Logger.Warn("cart references unknown dish",
				zap.String("reservation", r.ID), zap.String("dish", dishID), zap.Error(err))
			continue
		}
		cart.Items = append(cart.Items, CartItem{
			DishID:   dish.ID,
			Name:     dish.Name,
			Price:    dish.Price,
			ImageURL: dish.ImageURL,
			Quantity: quantity,
		})
		cart.TotalPrice += dish.Price * float64(quantity)
	}
	sort.Slice(cart.Items, func(i, j int) bool { return cart.Items[i].Name < cart.Items[j].Name })
	return cart, nil
}

func (s *Service) checkModificationLead(ctx context.Context, r *booking.Reservation) error {
	zone, err := s.Locations.ZoneOf(ctx, r.LocationID)
	if err != nil {
		return err
	}
	now := s.Clock.Now(zone)
	return booking.ValidateModificationTime(r.Date, r.TimeSlot, now)
}
