package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"greentasty-reservation-services/pkg/response"
)

func (h *Handler) TablesAvailable(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	locationID := strings.TrimSpace(query.Get("locationId"))
	date := strings.TrimSpace(query.Get("date"))
	if locationID == "" || date == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "locationId and date are required")
		return
	}

	guests := 1
	if raw := strings.TrimSpace(query.Get("guests")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "guests must be a positive number")
			return
		}
		guests = parsed
	}

	tables, err := h.Bookings.AvailableTables(r.Context(), locationID, date,
		strings.TrimSpace(query.Get("time")), guests)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, tables)
}
