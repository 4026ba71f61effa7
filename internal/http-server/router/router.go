package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"slotBooker/internal/config"
	"slotBooker/internal/http-server/handlers/admin/adminPage"
	"slotBooker/internal/http-server/handlers/admin/exportBookings"
	"slotBooker/internal/http-server/handlers/booking/availableSlots"
	"slotBooker/internal/http-server/handlers/booking/createBooking"
	"slotBooker/internal/http-server/handlers/booking/deleteBooking"
	"slotBooker/internal/http-server/handlers/booking/listBookings"
	"slotBooker/internal/http-server/handlers/health"
	"slotBooker/internal/http-server/handlers/spa"
	"slotBooker/internal/http-server/middleware/mwadmin"
	"slotBooker/internal/http-server/middleware/mwlogger"
	"slotBooker/internal/http-server/middleware/mwmetrics"
	"slotBooker/internal/http-server/middleware/mwratelimit"
	"slotBooker/internal/storage"
)

const readyTimeout = 2 * time.Second

func New(log *slog.Logger, cfg *config.Config, store storage.Store) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	if cfg.Metrics.Enabled {
		router.Use(mwmetrics.New())
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTPServer.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	adminOnly := mwadmin.New(log, cfg.Admin.Key)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(time.Now))
		r.Get("/ready", health.NewReady(log, store, readyTimeout))

		r.Get("/bookings", listBookings.New(log, store))
		r.With(mwratelimit.New(log, cfg.RateLimit.RPS, cfg.RateLimit.Burst)).
			Post("/bookings", createBooking.New(log, store))
		r.With(adminOnly).Delete("/bookings/{id}", deleteBooking.New(log, store))

		r.Get("/available-slots/{day}", availableSlots.New(log, store))
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(adminOnly)
		r.Get("/", adminPage.New(log, store))
		r.Get("/export", exportBookings.New(log, store))
	})

	if cfg.Metrics.Enabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Get("/*", spa.New(log, cfg.HTTPServer.StaticDir))

	return router
}
