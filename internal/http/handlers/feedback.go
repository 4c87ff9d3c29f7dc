package handlers

import (
	"encoding/json"
	"net/http"

	"greentasty-reservation-services/internal/feedback"
	"greentasty-reservation-services/pkg/response"
)

type feedbackRequest struct {
	ReservationID  string  `json:"reservationId"`
	ServiceRating  float64 `json:"serviceRating"`
	ServiceComment string  `json:"serviceComment"`
	CuisineRating  float64 `json:"cuisineRating"`
	CuisineComment string  `json:"cuisineComment"`
}

func (h *Handler) FeedbackCreate(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	var body feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	posted, err := h.Feedback.Post(r.Context(), feedback.PostRequest{
		ReservationID:  body.ReservationID,
		Author:         authCtx.Email,
		ServiceRating:  body.ServiceRating,
		ServiceComment: body.ServiceComment,
		CuisineRating:  body.CuisineRating,
		CuisineComment: body.CuisineComment,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Created(w, posted, "Feedback has been created")
}

func (h *Handler) FeedbackUpdate(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	var body feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	updated, err := h.Feedback.Edit(r.Context(), readPathString(r, "id"), authCtx.Email,
		feedback.EditRequest{
			ServiceRating:  body.ServiceRating,
			ServiceComment: body.ServiceComment,
			CuisineRating:  body.CuisineRating,
			CuisineComment: body.CuisineComment,
		})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, updated)
}

func (h *Handler) FeedbackByReservation(w http.ResponseWriter, r *http.Request) {
	posted, err := h.Feedback.ForReservation(r.Context(), readPathString(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, posted)
}
