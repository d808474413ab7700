package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/feed"
)

// MockMarkerRepository is an in-memory feed.MarkerRepository. Set Err to make
// every call fail.
type MockMarkerRepository struct {
	mu      sync.Mutex
	markers map[int64]map[string]bool
	Err     error
}

func NewMockMarkerRepository() *MockMarkerRepository {
	return &MockMarkerRepository{markers: make(map[int64]map[string]bool)}
}

func (m *MockMarkerRepository) ReadIDs(ctx context.Context, adminID int64) (map[string]bool, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]bool, len(m.markers[adminID]))
	for id, read := range m.markers[adminID] {
		out[id] = read
	}
	return out, nil
}

func (m *MockMarkerRepository) Upsert(ctx context.Context, marker *feed.ReadMarker) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markers[marker.AdminID] == nil {
		m.markers[marker.AdminID] = make(map[string]bool)
	}
	m.markers[marker.AdminID][marker.AlertID] = marker.IsRead
	return nil
}

func (m *MockMarkerRepository) UpsertAll(ctx context.Context, adminID int64, alertIDs []string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markers[adminID] == nil {
		m.markers[adminID] = make(map[string]bool)
	}
	for _, id := range alertIDs {
		m.markers[adminID][id] = true
	}
	return nil
}

func (m *MockMarkerRepository) DeleteAll(ctx context.Context, adminID int64) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.markers[adminID]))
	delete(m.markers, adminID)
	return n, nil
}

func (m *MockMarkerRepository) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return 0, nil
}

// MockStatsRepository is a feed.StatsRepository returning canned values.
// Zero value means every predicate is false. Set Err to make every call fail;
// set PingErr to fail only the liveness check.
type MockStatsRepository struct {
	Err     error
	PingErr error

	NewMemberCountVal      int
	NewMembersVal          []feed.MemberActivity
	PendingPaymentCountVal int
	PendingPaymentsVal     []feed.PendingPayment
	EquipmentStatusVal     map[string]int
	EquipmentIssuesVal     []feed.EquipmentIssue
	ExpiringCountVal       int
	ExpiringVal            []feed.ExpiringMembership
	IdleCounts             map[time.Duration]int
	IdleMembersVal         []feed.IdleMember
	FeedbackCountVal       int
	RecentFeedbackVal      []feed.FeedbackEntry
	RevenueFn              func(from, to time.Time) float64
	HighValueCountVal      int
	PlanCountsVal          map[string]int
	AttendanceCountVal     int
	LargestTableName       string
	LargestTableSize       int64
}

func (m *MockStatsRepository) NewMemberCount(ctx context.Context, since time.Time) (int, error) {
	return m.NewMemberCountVal, m.Err
}

func (m *MockStatsRepository) NewMembers(ctx context.Context, since time.Time, limit int) ([]feed.MemberActivity, error) {
	return m.NewMembersVal, m.Err
}

func (m *MockStatsRepository) PendingPaymentCount(ctx context.Context) (int, error) {
	return m.PendingPaymentCountVal, m.Err
}

func (m *MockStatsRepository) PendingPayments(ctx context.Context, limit int) ([]feed.PendingPayment, error) {
	return m.PendingPaymentsVal, m.Err
}

func (m *MockStatsRepository) EquipmentStatusCounts(ctx context.Context) (map[string]int, error) {
	return m.EquipmentStatusVal, m.Err
}

func (m *MockStatsRepository) EquipmentIssues(ctx context.Context, limit int) ([]feed.EquipmentIssue, error) {
	return m.EquipmentIssuesVal, m.Err
}

func (m *MockStatsRepository) ExpiringMembershipCount(ctx context.Context, within time.Duration) (int, error) {
	return m.ExpiringCountVal, m.Err
}

func (m *MockStatsRepository) ExpiringMemberships(ctx context.Context, within time.Duration, limit int) ([]feed.ExpiringMembership, error) {
	return m.ExpiringVal, m.Err
}

func (m *MockStatsRepository) IdleMemberCount(ctx context.Context, idleFor time.Duration) (int, error) {
	return m.IdleCounts[idleFor], m.Err
}

func (m *MockStatsRepository) IdleMembers(ctx context.Context, idleFor time.Duration, limit int) ([]feed.IdleMember, error) {
	return m.IdleMembersVal, m.Err
}

func (m *MockStatsRepository) FeedbackCount(ctx context.Context, since time.Time) (int, error) {
	return m.FeedbackCountVal, m.Err
}

func (m *MockStatsRepository) RecentFeedback(ctx context.Context, since time.Time, limit int) ([]feed.FeedbackEntry, error) {
	return m.RecentFeedbackVal, m.Err
}

func (m *MockStatsRepository) Revenue(ctx context.Context, from, to time.Time) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if m.RevenueFn == nil {
		return 0, nil
	}
	return m.RevenueFn(from, to), nil
}

func (m *MockStatsRepository) HighValuePaymentCount(ctx context.Context, minAmount float64, since time.Time) (int, error) {
	return m.HighValueCountVal, m.Err
}

func (m *MockStatsRepository) PlanMemberCounts(ctx context.Context) (map[string]int, error) {
	return m.PlanCountsVal, m.Err
}

func (m *MockStatsRepository) AttendanceCount(ctx context.Context, since time.Time) (int, error) {
	return m.AttendanceCountVal, m.Err
}

func (m *MockStatsRepository) Ping(ctx context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	return m.PingErr
}

func (m *MockStatsRepository) LargestTable(ctx context.Context) (string, int64, error) {
	return m.LargestTableName, m.LargestTableSize, m.Err
}
