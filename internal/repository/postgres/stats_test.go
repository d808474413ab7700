package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/gymdesk/gymdesk/internal/repository/postgres"
	"github.com/gymdesk/gymdesk/internal/testutil"
)

func ts(t time.Time) string {
	return t.Format(time.RFC3339)
}

func seedMember(t *testing.T, db *sql.DB, id int64, name, status string, joinedAt time.Time) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO members (id, full_name, email, status, joined_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, name, name+"@example.com", status, ts(joinedAt))
	if err != nil {
		t.Fatalf("failed to seed member %d: %v", id, err)
	}
}

func TestStatsRepository_NewMembers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewStatsRepository(db, "sqlite3")
	ctx := context.Background()
	now := time.Now()

	seedMember(t, db, 1, "Ana Cruz", "active", now.Add(-2*time.Hour))
	seedMember(t, db, 2, "Ben Reyes", "active", now.Add(-30*time.Minute))
	seedMember(t, db, 3, "Carla Santos", "active", now.Add(-48*time.Hour))

	count, err := repo.NewMemberCount(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("NewMemberCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("NewMemberCount() = %d, want 2", count)
	}

	members, err := repo.NewMembers(ctx, now.Add(-24*time.Hour), 5)
	if err != nil {
		t.Fatalf("NewMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("NewMembers() returned %d members, want 2", len(members))
	}
	// Newest first.
	if members[0].FullName != "Ben Reyes" {
		t.Errorf("NewMembers()[0] = %q, want Ben Reyes", members[0].FullName)
	}
}

func TestStatsRepository_PendingPayments(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewStatsRepository(db, "sqlite3")
	ctx := context.Background()
	now := time.Now()

	seedMember(t, db, 1, "Ana Cruz", "active", now)

	for i, status := range []string{"pending", "pending", "approved"} {
		_, err := db.Exec(`
			INSERT INTO payments (member_id, amount, status, created_at)
			VALUES (1, ?, ?, ?)
		`, 500+i*100, status, ts(now.Add(-time.Duration(i)*time.Hour)))
		if err != nil {
			t.Fatalf("failed to seed payment: %v", err)
		}
	}

	count, err := repo.PendingPaymentCount(ctx)
	if err != nil {
		t.Fatalf("PendingPaymentCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("PendingPaymentCount() = %d, want 2", count)
	}

	payments, err := repo.PendingPayments(ctx, 5)
	if err != nil {
		t.Fatalf("PendingPayments() error = %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("PendingPayments() returned %d, want 2", len(payments))
	}
	if payments[0].MemberName != "Ana Cruz" || payments[0].Amount != 500 {
		t.Errorf("PendingPayments()[0] = %+v, want Ana Cruz / 500", payments[0])
	}
}

func TestStatsRepository_Revenue(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewStatsRepository(db, "sqlite3")
	ctx := context.Background()

	seedMember(t, db, 1, "Ana Cruz", "active", time.Now())

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	rows := []struct {
		amount float64
		status string
		paidAt time.Time
	}{
		{1000, "approved", day.Add(9 * time.Hour)},
		{2500, "approved", day.Add(18 * time.Hour)},
		{9999, "pending", day.Add(12 * time.Hour)},
		// On the exclusive upper bound, must not count.
		{700, "approved", day.Add(24 * time.Hour)},
	}
	for _, p := range rows {
		_, err := db.Exec(`
			INSERT INTO payments (member_id, amount, status, paid_at)
			VALUES (1, ?, ?, ?)
		`, p.amount, p.status, ts(p.paidAt))
		if err != nil {
			t.Fatalf("failed to seed payment: %v", err)
		}
	}

	total, err := repo.Revenue(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Revenue() error = %v", err)
	}
	if total != 3500 {
		t.Errorf("Revenue() = %v, want 3500", total)
	}

	// Empty window sums to zero, not an error.
	total, err = repo.Revenue(ctx, day.Add(-48*time.Hour), day.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Revenue() error = %v", err)
	}
	if total != 0 {
		t.Errorf("Revenue() over empty window = %v, want 0", total)
	}
}

func TestStatsRepository_IdleMembers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewStatsRepository(db, "sqlite3")
	ctx := context.Background()
	now := time.Now()

	seedMember(t, db, 1, "Ana Cruz", "active", now.Add(-60*24*time.Hour))
	seedMember(t, db, 2, "Ben Reyes", "active", now.Add(-60*24*time.Hour))
	seedMember(t, db, 3, "Carla Santos", "inactive", now.Add(-60*24*time.Hour))

	// Ana visited yesterday, Ben three weeks ago, Carla never but is inactive.
	visits := []struct {
		memberID  int64
		checkedIn time.Time
	}{
		{1, now.Add(-24 * time.Hour)},
		{2, now.Add(-21 * 24 * time.Hour)},
	}
	for _, v := range visits {
		_, err := db.Exec(`
			INSERT INTO attendance (member_id, checked_in_at) VALUES (?, ?)
		`, v.memberID, ts(v.checkedIn))
		if err != nil {
			t.Fatalf("failed to seed attendance: %v", err)
		}
	}

	count, err := repo.IdleMemberCount(ctx, 14*24*time.Hour)
	if err != nil {
		t.Fatalf("IdleMemberCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("IdleMemberCount() = %d, want 1 (Ben only)", count)
	}

	idle, err := repo.IdleMembers(ctx, 14*24*time.Hour, 5)
	if err != nil {
		t.Fatalf("IdleMembers() error = %v", err)
	}
	if len(idle) != 1 || idle[0].FullName != "Ben Reyes" {
		t.Fatalf("IdleMembers() = %+v, want only Ben Reyes", idle)
	}
	if idle[0].LastSeen == nil {
		t.Error("IdleMembers() last seen is nil, want Ben's last visit")
	}
}

func TestStatsRepository_ExpiringMemberships(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewStatsRepository(db, "sqlite3")
	ctx := context.Background()
	now := time.Now()

	seedMember(t, db, 1, "Ana Cruz", "active", now)
	seedMember(t, db, 2, "Ben Reyes", "active", now)

	payments := []struct {
		memberID  int64
		status    string
		expiresAt time.Time
	}{
		{1, "approved", now.Add(3 * 24 * time.Hour)},
		// A later renewal pushes Ana's effective expiry out of the window.
		{1, "approved", now.Add(60 * 24 * time.Hour)},
		{2, "approved", now.Add(5 * 24 * time.Hour)},
	}
	for _, p := range payments {
		_, err := db.Exec(`
			INSERT INTO payments (member_id, amount, status, expires_at)
			VALUES (?, 1000, ?, ?)
		`, p.memberID, p.status, ts(p.expiresAt))
		if err != nil {
			t.Fatalf("failed to seed payment: %v", err)
		}
	}

	expiring, err := repo.ExpiringMemberships(ctx, 7*24*time.Hour, 5)
	if err != nil {
		t.Fatalf("ExpiringMemberships() error = %v", err)
	}
	if len(expiring) != 1 || expiring[0].MemberName != "Ben Reyes" {
		t.Fatalf("ExpiringMemberships() = %+v, want only Ben Reyes", expiring)
	}

	// The count must agree: Ana's renewal keeps her out of the window here too.
	count, err := repo.ExpiringMembershipCount(ctx, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("ExpiringMembershipCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("ExpiringMembershipCount() = %d, want 1", count)
	}
}

func TestStatsRepository_EquipmentAndPlans(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewStatsRepository(db, "sqlite3")
	ctx := context.Background()

	for _, e := range []struct{ name, status string }{
		{"Treadmill 1", "Available"},
		{"Treadmill 2", "Available"},
		{"Bench Press", "Maintenance"},
	} {
		if _, err := db.Exec(`INSERT INTO equipment (name, status) VALUES (?, ?)`, e.name, e.status); err != nil {
			t.Fatalf("failed to seed equipment: %v", err)
		}
	}

	counts, err := repo.EquipmentStatusCounts(ctx)
	if err != nil {
		t.Fatalf("EquipmentStatusCounts() error = %v", err)
	}
	if counts["Available"] != 2 || counts["Maintenance"] != 1 {
		t.Errorf("EquipmentStatusCounts() = %v, want Available:2 Maintenance:1", counts)
	}

	issues, err := repo.EquipmentIssues(ctx, 5)
	if err != nil {
		t.Fatalf("EquipmentIssues() error = %v", err)
	}
	if len(issues) != 1 || issues[0].Name != "Bench Press" {
		t.Errorf("EquipmentIssues() = %+v, want only Bench Press", issues)
	}

	if _, err := db.Exec(`INSERT INTO plans (id, name, price) VALUES (1, 'Monthly', 1500), (2, 'Annual', 15000)`); err != nil {
		t.Fatalf("failed to seed plans: %v", err)
	}
	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO members (full_name, email, plan_id, status, joined_at)
		VALUES ('Ana Cruz', 'ana@example.com', 1, 'active', ?),
		       ('Ben Reyes', 'ben@example.com', 1, 'inactive', ?)
	`, ts(now), ts(now))
	if err != nil {
		t.Fatalf("failed to seed members: %v", err)
	}

	plans, err := repo.PlanMemberCounts(ctx)
	if err != nil {
		t.Fatalf("PlanMemberCounts() error = %v", err)
	}
	// Inactive members don't count; plans with no members still appear.
	if plans["Monthly"] != 1 || plans["Annual"] != 0 {
		t.Errorf("PlanMemberCounts() = %v, want Monthly:1 Annual:0", plans)
	}
}

func TestStatsRepository_PingAndLargestTable(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewStatsRepository(db, "sqlite3")
	ctx := context.Background()

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	name, size, err := repo.LargestTable(ctx)
	if err != nil {
		t.Fatalf("LargestTable() error = %v", err)
	}
	if name != "database" {
		t.Errorf("LargestTable() name = %q, want %q on sqlite", name, "database")
	}
	if size <= 0 {
		t.Errorf("LargestTable() size = %d, want > 0", size)
	}
}
