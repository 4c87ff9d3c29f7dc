package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greentasty-reservation-services/internal/booking"
	"greentasty-reservation-services/internal/clock"
	"greentasty-reservation-services/internal/config"
	"greentasty-reservation-services/internal/events"
	"greentasty-reservation-services/internal/feedback"
	httpapi "greentasty-reservation-services/internal/http"
	"greentasty-reservation-services/internal/http/handlers"
	"greentasty-reservation-services/internal/logger"
	"greentasty-reservation-services/internal/preorder"
	"greentasty-reservation-services/internal/queue"
	"greentasty-reservation-services/internal/reconciler"
	"greentasty-reservation-services/internal/reports"
	"greentasty-reservation-services/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	reservations := &store.Reservations{DB: pool}
	tables := &store.Tables{DB: pool}
	waiters := &store.Waiters{DB: pool}
	locations := &store.Locations{DB: pool}
	dishes := &store.Dishes{DB: pool}
	feedbacks := &store.Feedbacks{DB: pool}
	reportRows := &store.ReportRows{DB: pool}

	var publisher events.Publisher
	var queueClient *queue.Client
	if cfg.RabbitMQURL != "" {
		qc, err := queue.New(cfg.RabbitMQURL)
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq connection failed", zap.Error(err))
			}
			log.Warn("rabbitmq connection failed; continuing without events", zap.Error(err))
		}
		if qc != nil {
			if err := qc.SetupTopology(
				events.RouteReservationCompleted,
				events.RouteFeedbackPosted,
				events.RouteFeedbackUpdated,
			); err != nil {
				if cfg.Env == "production" {
					log.Fatal("rabbitmq topology failed", zap.Error(err))
				}
				log.Warn("rabbitmq topology failed; continuing without events", zap.Error(err))
				_ = qc.Close()
				qc = nil
			}
		}
		queueClient = qc
		if qc != nil {
			defer qc.Close()
			publisher = qc
		}
	} else {
		log.Info("events disabled (RABBITMQ_URL is empty)")
	}
	if publisher == nil {
		publisher = noopPublisher{log}
	}

	systemClock := clock.System{}

	bookings := &booking.Service{
		Reservations: reservations,
		Tables:       tables,
		Waiters:      waiters,
		Locations:    locations,
		Clock:        systemClock,
		Logger:       log,
	}
	carts := &preorder.Service{
		Reservations: reservations,
		Dishes:       dishes,
		Locations:    locations,
		Clock:        systemClock,
		Logger:       log,
	}
	reviews := &feedback.Service{
		Feedbacks:    feedbacks,
		Reservations: reservations,
		Locations:    locations,
		Publisher:    publisher,
		Clock:        systemClock,
		Logger:       log,
	}
	reconcile := &reconciler.Service{
		Reservations: reservations,
		Waiters:      waiters,
		Locations:    locations,
		Publisher:    publisher,
		Clock:        systemClock,
		Logger:       log,
	}
	aggregator := &reports.Aggregator{Rows: reportRows, Dishes: dishes, Logger: log}
	reporting := &reports.Reports{Rows: reportRows}

	go reconcile.Run(ctx, cfg.ReconcileInterval)

	if queueClient != nil && cfg.RabbitMQWorkerMode == "daemon" {
		log.Info("reports worker enabled", zap.String("queue", queue.ReportsQueue))
		go func() {
			err := queueClient.ConsumeWithRetry(queue.ReportsQueue,
				queue.ReportsHandler(aggregator, log), 5, 5*time.Second)
			if err != nil {
				log.Error("reports consumer stopped", zap.Error(err))
			}
		}()
	}

	h := &handlers.Handler{
		Logger:     log,
		Config:     cfg,
		Bookings:   bookings,
		Carts:      carts,
		Feedback:   reviews,
		Reports:    reporting,
		Dishes:     dishes,
		Reconciler: reconcile,
	}

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(h, cfg, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("reservation service listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}

// noopPublisher keeps the service usable in development without a broker.
type noopPublisher struct {
	log *zap.Logger
}

func (p noopPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.log.Debug("event dropped, no broker configured", zap.String("routingKey", routingKey))
	return nil
}
