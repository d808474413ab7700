// Package router assembles the chi router with the full middleware stack
// and route tree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/gymdesk/gymdesk/internal/api/handlers"
	"github.com/gymdesk/gymdesk/internal/api/middleware"
	"github.com/gymdesk/gymdesk/internal/config"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
	"github.com/gymdesk/gymdesk/internal/pkg/metrics"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Member       *handlers.MemberHandler
	Plan         *handlers.PlanHandler
	Payment      *handlers.PaymentHandler
	Equipment    *handlers.EquipmentHandler
	Attendance   *handlers.AttendanceHandler
	Feedback     *handlers.FeedbackHandler
	Notification *handlers.NotificationHandler
	Stream       *handlers.StreamHandler
}

// New builds the router
func New(cfg *config.Config, log *logger.Logger, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	rl := middleware.NewRateLimiter(20, 40)
	r.Use(rl.Middleware)

	r.Get("/healthz", h.Health.Live)
	r.Get("/readyz", h.Health.Ready)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.Auth.JWTSecret))
				r.Get("/me", h.Auth.Me)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Auth.JWTSecret))

			r.Route("/members", func(r chi.Router) {
				r.Get("/", h.Member.List)
				r.Post("/", h.Member.Create)
				r.Get("/summary", h.Member.Summary)
				r.Get("/{id}", h.Member.Get)
				r.Patch("/{id}", h.Member.Update)
				r.Delete("/{id}", h.Member.Delete)
				r.Get("/{id}/attendance", h.Attendance.History)
			})

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", h.Plan.List)
				r.Post("/", h.Plan.Create)
				r.Get("/{id}", h.Plan.Get)
				r.Patch("/{id}", h.Plan.Update)
				r.Delete("/{id}", h.Plan.Delete)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", h.Payment.List)
				r.Post("/", h.Payment.Create)
				r.Get("/{id}", h.Payment.Get)
				r.Patch("/{id}/status", h.Payment.UpdateStatus)
				r.Delete("/{id}", h.Payment.Delete)
			})

			r.Route("/equipment", func(r chi.Router) {
				r.Get("/", h.Equipment.List)
				r.Post("/", h.Equipment.Create)
				r.Get("/summary", h.Equipment.Summary)
				r.Get("/{id}", h.Equipment.Get)
				r.Patch("/{id}", h.Equipment.Update)
				r.Delete("/{id}", h.Equipment.Delete)
			})

			r.Post("/attendance", h.Attendance.CheckIn)

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", h.Feedback.List)
				r.Post("/", h.Feedback.Create)
				r.Get("/{id}", h.Feedback.Get)
				r.Delete("/{id}", h.Feedback.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/stream", h.Stream.Stream)
				r.Post("/read", h.Notification.MarkRead)
				r.Post("/sync", h.Notification.Sync)
			})
		})
	})

	return r
}
