package handlers

import (
	"encoding/json"
	"net/http"

	"greentasty-reservation-services/internal/preorder"
	"greentasty-reservation-services/pkg/response"
)

type replaceCartRequest struct {
	DishItems map[string]int `json:"dishItems"`
	State     string         `json:"state"`
}

func (h *Handler) CartGet(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.CartFor(r.Context(), readPathString(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (h *Handler) CartReplace(w http.ResponseWriter, r *http.Request) {
	var body replaceCartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	state, ok := preorder.ParseState(body.State)
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown pre-order state")
		return
	}

	cart, err := h.Carts.ReplaceCart(r.Context(), readPathString(r, "id"), body.DishItems, state)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (h *Handler) CartAddDish(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.AddDish(r.Context(), readPathString(r, "id"), readPathString(r, "dishId"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (h *Handler) DishesList(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.Dishes.List(r.Context(), readPathString(r, "locationId"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, dishes)
}

func (h *Handler) DishDetail(w http.ResponseWriter, r *http.Request) {
	dish, err := h.Dishes.Dish(r.Context(), readPathString(r, "dishId"), readPathString(r, "locationId"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, dish)
}
