package handlers

import (
	"encoding/json"
	"net/http"

	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/pkg/response"
)

type clientBookingRequest struct {
	LocationID   string   `json:"locationId"`
	TableNumbers []string `json:"tableNumber"`
	Date         string   `json:"date"`
	TimeFrom     string   `json:"timeFrom"`
	TimeTo       string   `json:"timeTo"`
	GuestsNumber int      `json:"guestsNumber"`
}

type waiterBookingRequest struct {
	clientBookingRequest
	ClientType    string `json:"clientType"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

type bookingConfirmation struct {
	*booking.Reservation
	LocationAddress string `json:"locationAddress"`
	UserInfo        string `json:"userInfo,omitempty"`
}

func (h *Handler) ClientBookingCreate(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	var body clientBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	confirmation, err := h.Bookings.CreateClientBooking(r.Context(), booking.ClientBookingRequest{
		LocationID:    body.LocationID,
		TableIDs:      body.TableNumbers,
		Date:          body.Date,
		TimeFrom:      body.TimeFrom,
		TimeTo:        body.TimeTo,
		GuestsNumber:  body.GuestsNumber,
		CustomerEmail: authCtx.Email,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Created(w, bookingConfirmation{
		Reservation:     confirmation.Reservation,
		LocationAddress: confirmation.LocationAddress,
	}, "Reservation created successfully")
}

func (h *Handler) WaiterBookingCreate(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	var body waiterBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	confirmation, err := h.Bookings.CreateWaiterBooking(r.Context(), booking.WaiterBookingRequest{
		ClientType:    booking.ClientType(body.ClientType),
		LocationID:    body.LocationID,
		TableIDs:      body.TableNumbers,
		Date:          body.Date,
		TimeFrom:      body.TimeFrom,
		TimeTo:        body.TimeTo,
		GuestsNumber:  body.GuestsNumber,
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		WaiterEmail:   authCtx.Email,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Created(w, bookingConfirmation{
		Reservation:     confirmation.Reservation,
		LocationAddress: confirmation.LocationAddress,
		UserInfo:        confirmation.UserInfo,
	}, "Reservation created successfully")
}

type editBookingRequest struct {
	GuestsNumber int    `json:"guestsNumber"`
	TimeFrom     string `json:"timeFrom"`
	TimeTo       string `json:"timeTo"`
}

func (h *Handler) BookingEdit(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	var body editBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	reservation, message, err := h.Bookings.Edit(r.Context(), readPathString(r, "id"),
		bookingActor(authCtx), booking.EditRequest{
			GuestsNumber: body.GuestsNumber,
			TimeFrom:     body.TimeFrom,
			TimeTo:       body.TimeTo,
		})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    reservation,
		"message": message,
	})
}

func (h *Handler) BookingCancel(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	if err := h.Bookings.Cancel(r.Context(), readPathString(r, "id"), bookingActor(authCtx)); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Message(w, "Reservation cancelled successfully")
}

func (h *Handler) CustomerReservationsList(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	var (
		reservations []booking.Summary
		err          error
	)
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := booking.ParseStatus(raw)
		if !ok {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown reservation status")
			return
		}
		reservations, err = h.Bookings.ListForCustomerByStatus(r.Context(), authCtx.Email, status)
	} else {
		reservations, err = h.Bookings.ListForCustomer(r.Context(), authCtx.Email)
	}
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, reservations)
}

func (h *Handler) WaiterReservationsList(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	query := r.URL.Query()
	reservations, err := h.Bookings.ListForWaiter(r.Context(), authCtx.Email, booking.WaiterFilter{
		Date:    query.Get("date"),
		Time:    query.Get("time"),
		TableID: query.Get("tableNumber"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, reservations)
}
