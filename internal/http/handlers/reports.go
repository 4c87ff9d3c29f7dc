package handlers

import (
	"net/http"
	"strings"

	"greentasty-reservation-services/internal/auth"
	"greentasty-reservation-services/pkg/response"
)

func readReportPeriod(r *http.Request) (string, string, bool) {
	query := r.URL.Query()
	fromDate := strings.TrimSpace(query.Get("fromDate"))
	toDate := strings.TrimSpace(query.Get("toDate"))
	return fromDate, toDate, fromDate != "" && toDate != ""
}

func (h *Handler) WaiterReport(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	fromDate, toDate, ok := readReportPeriod(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "fromDate and toDate are required")
		return
	}

	// Waiters may only pull their own numbers; admins can name anyone.
	waiterEmail := strings.TrimSpace(r.URL.Query().Get("waiterEmail"))
	if authCtx.Role != auth.RoleAdmin || waiterEmail == "" {
		waiterEmail = authCtx.Email
	}

	summary, err := h.Reports.WaiterReport(r.Context(), waiterEmail, fromDate, toDate)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, summary)
}

func (h *Handler) WaiterReportRows(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := actor(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	fromDate, toDate, ok := readReportPeriod(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "fromDate and toDate are required")
		return
	}

	waiterEmail := strings.TrimSpace(r.URL.Query().Get("waiterEmail"))
	if authCtx.Role != auth.RoleAdmin || waiterEmail == "" {
		waiterEmail = authCtx.Email
	}

	rows, err := h.Reports.RowsByWaiter(r.Context(), waiterEmail, fromDate, toDate)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, rows)
}

func (h *Handler) LocationReport(w http.ResponseWriter, r *http.Request) {
	fromDate, toDate, ok := readReportPeriod(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "fromDate and toDate are required")
		return
	}

	summary, err := h.Reports.LocationReport(r.Context(), readPathString(r, "locationId"), fromDate, toDate)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	response.Success(w, summary)
}
