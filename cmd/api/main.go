// The api command runs the GymDesk HTTP API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gymdesk/gymdesk/internal/api/handlers"
	"github.com/gymdesk/gymdesk/internal/api/router"
	"github.com/gymdesk/gymdesk/internal/config"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
	"github.com/gymdesk/gymdesk/internal/pkg/validator"
	"github.com/gymdesk/gymdesk/internal/repository/postgres"
	"github.com/gymdesk/gymdesk/internal/services"
	"github.com/gymdesk/gymdesk/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	adminRepo := postgres.NewAdminRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	equipmentRepo := postgres.NewEquipmentRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)
	markerRepo := postgres.NewMarkerRepository(db)
	statsRepo := postgres.NewStatsRepository(db, cfg.Database.Driver)

	adminSvc := services.NewAdminService(adminRepo, cfg.Auth, log)
	memberSvc := services.NewMemberService(memberRepo, log)
	planSvc := services.NewPlanService(planRepo, log)
	paymentSvc := services.NewPaymentService(paymentRepo, log)
	equipmentSvc := services.NewEquipmentService(equipmentRepo, log)
	attendanceSvc := services.NewAttendanceService(attendanceRepo, memberRepo, log)
	feedbackSvc := services.NewFeedbackService(feedbackRepo, log)
	feedSvc := services.NewFeedService(markerRepo, statsRepo, cfg.Feed, log)

	janitor := services.NewJanitor(markerRepo, cfg.Feed.MarkerTTL, log)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start janitor: %v", err)
	}
	defer janitor.Stop()

	v := validator.New()
	secureCookies := cfg.Server.Environment != "development"

	handler := router.New(cfg, log, router.Handlers{
		Health:       handlers.NewHealthHandler(db),
		Auth:         handlers.NewAuthHandler(adminSvc, v, secureCookies),
		Member:       handlers.NewMemberHandler(memberSvc, v),
		Plan:         handlers.NewPlanHandler(planSvc, v),
		Payment:      handlers.NewPaymentHandler(paymentSvc, v),
		Equipment:    handlers.NewEquipmentHandler(equipmentSvc, v),
		Attendance:   handlers.NewAttendanceHandler(attendanceSvc, v),
		Feedback:     handlers.NewFeedbackHandler(feedbackSvc, v),
		Notification: handlers.NewNotificationHandler(feedSvc, log),
		Stream:       handlers.NewStreamHandler(feedSvc, log),
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     handler,
		ReadTimeout: cfg.Server.ReadTimeout,
		// WriteTimeout stays 0 by default; a deadline would cut long-lived
		// notification streams.
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("api server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}
