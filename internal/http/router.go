package httpapi

import (
	"net/http"

	"greentasty-reservation-services/internal/auth"
	"greentasty-reservation-services/internal/config"
	"greentasty-reservation-services/internal/http/handlers"
	"greentasty-reservation-services/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(h *handlers.Handler, cfg config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
				"Pragma",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}

		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}

		r.Use(cors.Handler(options))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Menu browsing is open; everything else needs a token.
	r.Route("/api/locations/{locationId}/dishes", func(r chi.Router) {
		r.Get("/", h.DishesList)
		r.Get("/{dishId}", h.DishDetail)
	})

	r.Route("/api/bookings", func(r chi.Router) {
		r.With(middleware.RequireRoles(cfg.JWTSecret)).Get("/tables", h.TablesAvailable)
		r.With(middleware.RequireRoles(cfg.JWTSecret, auth.RoleCustomer)).Post("/client", h.ClientBookingCreate)
		r.With(middleware.RequireRoles(cfg.JWTSecret, auth.RoleWaiter)).Post("/waiter", h.WaiterBookingCreate)
		r.With(middleware.RequireRoles(cfg.JWTSecret, auth.RoleWaiter)).Get("/waiter", h.WaiterReservationsList)
	})

	r.Route("/api/reservations", func(r chi.Router) {
		r.Use(middleware.RequireRoles(cfg.JWTSecret))

		r.Get("/", h.CustomerReservationsList)
		r.Put("/{id}", h.BookingEdit)
		r.Delete("/{id}", h.BookingCancel)
		r.Get("/{id}/order", h.CartGet)
		r.Put("/{id}/order", h.CartReplace)
		r.Post("/{id}/order/{dishId}", h.CartAddDish)
		r.Get("/{id}/feedback", h.FeedbackByReservation)
	})

	r.Route("/api/feedbacks", func(r chi.Router) {
		r.Use(middleware.RequireRoles(cfg.JWTSecret, auth.RoleCustomer))

		r.Post("/", h.FeedbackCreate)
		r.Put("/{id}", h.FeedbackUpdate)
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.With(middleware.RequireRoles(cfg.JWTSecret, auth.RoleWaiter, auth.RoleAdmin)).Get("/waiter", h.WaiterReport)
		r.With(middleware.RequireRoles(cfg.JWTSecret, auth.RoleWaiter, auth.RoleAdmin)).Get("/waiter/rows", h.WaiterReportRows)
		r.With(middleware.RequireRoles(cfg.JWTSecret, auth.RoleAdmin)).Get("/locations/{locationId}", h.LocationReport)
	})

	r.Route("/api/internal", func(r chi.Router) {
		r.Use(middleware.TaskAuth(cfg.InternalTaskToken))

		r.Post("/reconcile", h.ReconcileTrigger)
	})

	return r
}
