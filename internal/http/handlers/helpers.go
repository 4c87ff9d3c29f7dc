package handlers

import (
	"errors"
	"net/http"

	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/internal/middleware"
	"greentasty-reservation-services/pkg/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func readPathString(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// writeDomainError maps domain errors onto the response envelope; anything
// unrecognized is an internal error and gets logged.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *booking.Error
	if errors.As(err, &domainErr) {
		response.Error(w, domainErr.StatusCode, string(domainErr.Code), domainErr.Message)
		return
	}
	h.Logger.Error("request failed",
		zap.String("path", r.URL.Path), zap.Error(err))
	response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}

// actor resolves the authenticated identity the request acts as.
func actor(r *http.Request) (middleware.AuthContext, bool) {
	authCtx, ok := middleware.GetAuthContext(r.Context())
	if !ok || authCtx == nil {
		return middleware.AuthContext{}, false
	}
	return *authCtx, true
}

func bookingActor(a middleware.AuthContext) booking.Actor {
	return booking.Actor{Email: a.Email, Role: string(a.Role)}
}
