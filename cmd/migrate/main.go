// The migrate command applies pending schema migrations and exits.
package main

import (
	"fmt"
	"os"

	"github.com/gymdesk/gymdesk/internal/config"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
	"github.com/gymdesk/gymdesk/internal/repository/postgres"
	"github.com/gymdesk/gymdesk/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: "console"})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Info("migrations applied")
}
