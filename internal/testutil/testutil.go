// Package testutil provides shared test helpers: an in-memory database with
// the full schema applied, and hand-written mocks for the feed interfaces.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/gymdesk/gymdesk/internal/repository/postgres"
	"github.com/gymdesk/gymdesk/migrations"
)

// NewTestDB opens an in-memory SQLite database with all migrations applied.
// The database is closed automatically when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// A single connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}
