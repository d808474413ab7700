package feed

import (
	"context"
	"time"
)

// MarkerRepository defines the interface for read-marker data access
type MarkerRepository interface {
	// ReadIDs returns the set of alert ids the admin has marked read
	ReadIDs(ctx context.Context, adminID int64) (map[string]bool, error)

	// Upsert creates or updates a read-marker, last write wins
	Upsert(ctx context.Context, m *ReadMarker) error

	// UpsertAll marks every given alert id read for the admin
	UpsertAll(ctx context.Context, adminID int64, alertIDs []string) error

	// DeleteAll removes all the admin's markers, returning the count deleted
	DeleteAll(ctx context.Context, adminID int64) (int64, error)

	// DeleteStale removes markers not updated since the given time
	DeleteStale(ctx context.Context, olderThan time.Time) (int64, error)
}

// StatsRepository exposes the read-only aggregates the alert predicates and
// raw feed queries evaluate each tick.
type StatsRepository interface {
	NewMemberCount(ctx context.Context, since time.Time) (int, error)
	NewMembers(ctx context.Context, since time.Time, limit int) ([]MemberActivity, error)

	PendingPaymentCount(ctx context.Context) (int, error)
	PendingPayments(ctx context.Context, limit int) ([]PendingPayment, error)

	EquipmentStatusCounts(ctx context.Context) (map[string]int, error)
	EquipmentIssues(ctx context.Context, limit int) ([]EquipmentIssue, error)

	ExpiringMembershipCount(ctx context.Context, within time.Duration) (int, error)
	ExpiringMemberships(ctx context.Context, within time.Duration, limit int) ([]ExpiringMembership, error)

	IdleMemberCount(ctx context.Context, idleFor time.Duration) (int, error)
	IdleMembers(ctx context.Context, idleFor time.Duration, limit int) ([]IdleMember, error)

	FeedbackCount(ctx context.Context, since time.Time) (int, error)
	RecentFeedback(ctx context.Context, since time.Time, limit int) ([]FeedbackEntry, error)

	// Revenue sums approved payment amounts in [from, to)
	Revenue(ctx context.Context, from, to time.Time) (float64, error)
	HighValuePaymentCount(ctx context.Context, minAmount float64, since time.Time) (int, error)

	PlanMemberCounts(ctx context.Context) (map[string]int, error)
	AttendanceCount(ctx context.Context, since time.Time) (int, error)

	// Ping checks database liveness
	Ping(ctx context.Context) error

	// LargestTable reports the biggest table and its approximate size in bytes
	LargestTable(ctx context.Context) (string, int64, error)
}
