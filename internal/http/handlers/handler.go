package handlers

import (
	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/internal/catalog"
	"greentasty-reservation-services/internal/config"
	"greentasty-reservation-services/internal/feedback"
	"greentasty-reservation-services/internal/preorder"
	"greentasty-reservation-services/internal/reconciler"
	"greentasty-reservation-services/internal/reports"

	"go.uber.org/zap"
)

type Handler struct {
	Logger     *zap.Logger
	Config     config.Config
	Bookings   *booking.Service
	Carts      *preorder.Service
	Feedback   *feedback.Service
	Reports    *reports.Reports
	Dishes     catalog.Catalog
	Reconciler *reconciler.Service
}
