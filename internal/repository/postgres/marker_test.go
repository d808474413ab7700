package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/repository/postgres"
	"github.com/gymdesk/gymdesk/internal/testutil"
)

func TestMarkerRepository_UpsertAndReadIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewMarkerRepository(db)
	ctx := context.Background()

	m := &feed.ReadMarker{AdminID: 1, AlertID: "pending_payments", Category: "payment", IsRead: true}
	if err := repo.Upsert(ctx, m); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Upserting the same key again must not fail or duplicate.
	if err := repo.Upsert(ctx, m); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	ids, err := repo.ReadIDs(ctx, 1)
	if err != nil {
		t.Fatalf("ReadIDs() error = %v", err)
	}
	if len(ids) != 1 || !ids["pending_payments"] {
		t.Errorf("ReadIDs() = %v, want map with pending_payments", ids)
	}

	// Another admin sees nothing.
	ids, err = repo.ReadIDs(ctx, 2)
	if err != nil {
		t.Fatalf("ReadIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ReadIDs() for other admin = %v, want empty", ids)
	}
}

func TestMarkerRepository_ExactKeyOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewMarkerRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &feed.ReadMarker{AdminID: 1, AlertID: "sales", IsRead: true}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	ids, err := repo.ReadIDs(ctx, 1)
	if err != nil {
		t.Fatalf("ReadIDs() error = %v", err)
	}
	if ids["sales_decline"] {
		t.Error("marker for \"sales\" matched \"sales_decline\"; lookup must be exact")
	}
}

func TestMarkerRepository_UpsertAllAndDeleteAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewMarkerRepository(db)
	ctx := context.Background()

	alertIDs := []string{"pending_payments", "new_members_today", "equipment_maintenance"}
	if err := repo.UpsertAll(ctx, 7, alertIDs); err != nil {
		t.Fatalf("UpsertAll() error = %v", err)
	}

	ids, err := repo.ReadIDs(ctx, 7)
	if err != nil {
		t.Fatalf("ReadIDs() error = %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("ReadIDs() returned %d ids, want 3", len(ids))
	}

	n, err := repo.DeleteAll(ctx, 7)
	if err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}
	if n != 3 {
		t.Errorf("DeleteAll() removed %d rows, want 3", n)
	}

	ids, _ = repo.ReadIDs(ctx, 7)
	if len(ids) != 0 {
		t.Errorf("ReadIDs() after DeleteAll = %v, want empty", ids)
	}
}

func TestMarkerRepository_DeleteStale(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewMarkerRepository(db)
	ctx := context.Background()

	old := time.Now().Add(-100 * 24 * time.Hour).Format(time.RFC3339)
	_, err := db.Exec(`
		INSERT INTO read_markers (admin_id, alert_id, is_read, created_at, updated_at)
		VALUES (1, 'stale_alert', 1, ?, ?)
	`, old, old)
	if err != nil {
		t.Fatalf("failed to seed stale marker: %v", err)
	}

	if err := repo.Upsert(ctx, &feed.ReadMarker{AdminID: 1, AlertID: "fresh_alert", IsRead: true}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	n, err := repo.DeleteStale(ctx, time.Now().Add(-90*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteStale() error = %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteStale() removed %d rows, want 1", n)
	}

	ids, _ := repo.ReadIDs(ctx, 1)
	if !ids["fresh_alert"] || ids["stale_alert"] {
		t.Errorf("ReadIDs() after prune = %v, want only fresh_alert", ids)
	}
}
