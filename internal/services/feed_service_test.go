package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gymdesk/gymdesk/internal/config"
	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
	"github.com/gymdesk/gymdesk/internal/testutil"
)

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{
		PollInterval:       3 * time.Second,
		HeartbeatInterval:  30 * time.Second,
		MaxAlerts:          20,
		ExpiryWindowDays:   7,
		LowAttendanceDays:  14,
		InactiveDays:       30,
		HighValueAmount:    1000,
		SalesDeltaPercent:  20,
		GrowthTargetPct:    10,
		PlanImbalanceRatio: 5,
		LargeTableBytes:    50 * 1024 * 1024,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "console"})
}

type recordedEvent struct {
	name    string
	payload interface{}
}

// recordingSink collects events; set failAfter >= 0 to make subsequent sends fail.
type recordingSink struct {
	mu        sync.Mutex
	events    []recordedEvent
	failAfter int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{failAfter: -1}
}

func (s *recordingSink) Send(event string, payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAfter >= 0 && len(s.events) >= s.failAfter {
		return errors.New("client gone")
	}
	s.events = append(s.events, recordedEvent{name: event, payload: payload})
	return nil
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.name
	}
	return out
}

func (s *recordingSink) count(event string) int {
	n := 0
	for _, name := range s.names() {
		if name == event {
			n++
		}
	}
	return n
}

func newTestFeedService(stats *testutil.MockStatsRepository, markers *testutil.MockMarkerRepository) *FeedService {
	return NewFeedService(markers, stats, testFeedConfig(), testLogger())
}

func TestEvaluate_SinglePendingPaymentAlert(t *testing.T) {
	stats := &testutil.MockStatsRepository{PendingPaymentCountVal: 3}
	svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())

	alerts, err := svc.Evaluate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if len(alerts) != 1 {
		t.Fatalf("Evaluate() returned %d alerts, want 1", len(alerts))
	}
	a := alerts[0]
	if a.ID != feed.AlertPendingPayments {
		t.Errorf("alert id = %q, want %q", a.ID, feed.AlertPendingPayments)
	}
	if a.Type != feed.TypeWarning {
		t.Errorf("alert type = %q, want %q", a.Type, feed.TypeWarning)
	}
	if a.Priority != feed.PriorityHigh {
		t.Errorf("alert priority = %q, want %q", a.Priority, feed.PriorityHigh)
	}
}

func TestEvaluate_ReadMarkerSuppression(t *testing.T) {
	stats := &testutil.MockStatsRepository{PendingPaymentCountVal: 3}
	markers := testutil.NewMockMarkerRepository()
	svc := newTestFeedService(stats, markers)
	ctx := context.Background()

	count, err := svc.MarkRead(ctx, 1, feed.AlertPendingPayments, "payment")
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if count != 0 {
		t.Errorf("MarkRead() unread count = %d, want 0", count)
	}

	alerts, err := svc.Evaluate(ctx, 1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("Evaluate() returned %d alerts after mark-read, want 0", len(alerts))
	}

	// Another admin's feed is unaffected.
	alerts, err = svc.Evaluate(ctx, 2)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(alerts) != 1 {
		t.Errorf("Evaluate() for other admin returned %d alerts, want 1", len(alerts))
	}
}

func TestEvaluate_ExactIDMatchOnly(t *testing.T) {
	// A marker for a prefix of an alert id must not suppress it.
	stats := &testutil.MockStatsRepository{
		RevenueFn: func(from, to time.Time) float64 {
			// Flat revenue every period keeps the delta predicates quiet but
			// makes month-over-month growth 0%, below target.
			return 100
		},
	}
	markers := testutil.NewMockMarkerRepository()
	svc := newTestFeedService(stats, markers)
	ctx := context.Background()

	if _, err := svc.MarkRead(ctx, 1, "revenue", "sales"); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}

	alerts, err := svc.Evaluate(ctx, 1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	found := false
	for _, a := range alerts {
		if a.ID == feed.AlertRevenueGrowthTarget {
			found = true
		}
	}
	if !found {
		t.Error("marker for \"revenue\" suppressed revenue_growth_target; want exact-key matching")
	}
}

func TestEvaluate_PrioritySortAndTruncate(t *testing.T) {
	stats := &testutil.MockStatsRepository{
		PendingPaymentCountVal: 2,                                  // high
		NewMemberCountVal:      1,                                  // medium
		FeedbackCountVal:       4,                                  // low
		ExpiringCountVal:       1,                                  // high
		EquipmentStatusVal:     map[string]int{"Maintenance": 1},   // medium
		AttendanceCountVal:     9,                                  // low
	}
	svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())

	alerts, err := svc.Evaluate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(alerts) != 6 {
		t.Fatalf("Evaluate() returned %d alerts, want 6", len(alerts))
	}
	for i := 1; i < len(alerts); i++ {
		if feed.PriorityRank(alerts[i].Priority) > feed.PriorityRank(alerts[i-1].Priority) {
			t.Errorf("alerts out of priority order at %d: %s before %s",
				i, alerts[i-1].Priority, alerts[i].Priority)
		}
	}
	if alerts[0].Priority != feed.PriorityHigh {
		t.Errorf("first alert priority = %q, want high", alerts[0].Priority)
	}

	// Truncation keeps the head of the sorted list.
	svc.cfg.MaxAlerts = 3
	alerts, err = svc.Evaluate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("Evaluate() returned %d alerts with MaxAlerts=3, want 3", len(alerts))
	}
	if alerts[0].Priority != feed.PriorityHigh || alerts[1].Priority != feed.PriorityHigh {
		t.Error("truncation dropped high-priority alerts")
	}
}

func TestMarkAllRead_ZeroesUnreadCount(t *testing.T) {
	stats := &testutil.MockStatsRepository{
		PendingPaymentCountVal: 5,
		NewMemberCountVal:      2,
		FeedbackCountVal:       1,
		IdleCounts: map[time.Duration]int{
			14 * 24 * time.Hour: 3,
			30 * 24 * time.Hour: 1,
		},
	}
	markers := testutil.NewMockMarkerRepository()
	svc := newTestFeedService(stats, markers)
	ctx := context.Background()

	before, err := svc.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if before == 0 {
		t.Fatal("expected a non-zero unread count before mark-all-read")
	}

	if err := svc.MarkAllRead(ctx, 1); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}

	after, err := svc.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if after != 0 {
		t.Errorf("unread count after MarkAllRead = %d, want 0", after)
	}
}

func TestClearAll_DeletesMarkersAndRearms(t *testing.T) {
	stats := &testutil.MockStatsRepository{PendingPaymentCountVal: 1}
	markers := testutil.NewMockMarkerRepository()
	svc := newTestFeedService(stats, markers)
	ctx := context.Background()

	if err := svc.MarkAllRead(ctx, 1); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}
	if n, _ := svc.UnreadCount(ctx, 1); n != 0 {
		t.Fatalf("unread count after MarkAllRead = %d, want 0", n)
	}

	if err := svc.ClearAll(ctx, 1); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	// With the markers gone, the still-true condition re-raises its alert.
	alerts, err := svc.Evaluate(ctx, 1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(alerts) != 1 {
		t.Errorf("Evaluate() after ClearAll returned %d alerts, want 1", len(alerts))
	}
}

func TestMarkRead_RequiresID(t *testing.T) {
	svc := newTestFeedService(&testutil.MockStatsRepository{}, testutil.NewMockMarkerRepository())
	if _, err := svc.MarkRead(context.Background(), 1, "", ""); err == nil {
		t.Error("MarkRead() with empty id should fail")
	}
}

func TestTick_HashSuppression(t *testing.T) {
	stats := &testutil.MockStatsRepository{PendingPaymentCountVal: 3}
	svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())
	sink := newRecordingSink()
	sess := &session{rawHashes: make(map[string]string)}
	ctx := context.Background()

	if err := svc.tick(ctx, 1, sink, sess); err != nil {
		t.Fatalf("first tick error = %v", err)
	}
	if got := sink.count(feed.EventNotifications); got != 1 {
		t.Fatalf("first tick emitted %d notifications events, want 1", got)
	}
	if got := sink.count(feed.EventCountUpdate); got != 1 {
		t.Fatalf("first tick emitted %d count_update events, want 1", got)
	}

	// Unchanged aggregates: the second tick must stay silent.
	if err := svc.tick(ctx, 1, sink, sess); err != nil {
		t.Fatalf("second tick error = %v", err)
	}
	if got := sink.count(feed.EventNotifications); got != 1 {
		t.Errorf("second tick re-emitted notifications (total %d), want suppression", got)
	}
	if got := sink.count(feed.EventCountUpdate); got != 1 {
		t.Errorf("second tick re-emitted count_update (total %d), want suppression", got)
	}

	// A change in the aggregates re-emits.
	stats.PendingPaymentCountVal = 7
	if err := svc.tick(ctx, 1, sink, sess); err != nil {
		t.Fatalf("third tick error = %v", err)
	}
	if got := sink.count(feed.EventNotifications); got != 2 {
		t.Errorf("changed aggregates emitted %d notifications events total, want 2", got)
	}
}

func TestTick_RawFeedDiffing(t *testing.T) {
	stats := &testutil.MockStatsRepository{
		PendingPaymentCountVal: 1,
		PendingPaymentsVal: []feed.PendingPayment{
			{ID: 1, MemberName: "Ana Reyes", Amount: 1500},
		},
	}
	svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())
	sink := newRecordingSink()
	sess := &session{rawHashes: make(map[string]string)}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.tick(ctx, 1, sink, sess); err != nil {
			t.Fatalf("tick %d error = %v", i, err)
		}
	}
	if got := sink.count(feed.EventPendingPayments); got != 1 {
		t.Errorf("unchanged raw category emitted %d times, want 1", got)
	}

	stats.PendingPaymentsVal = append(stats.PendingPaymentsVal,
		feed.PendingPayment{ID: 2, MemberName: "Jo Cruz", Amount: 800})
	if err := svc.tick(ctx, 1, sink, sess); err != nil {
		t.Fatalf("tick error = %v", err)
	}
	if got := sink.count(feed.EventPendingPayments); got != 2 {
		t.Errorf("changed raw category emitted %d times total, want 2", got)
	}

	// Empty categories never fire.
	if got := sink.count(feed.EventNewMembers); got != 0 {
		t.Errorf("empty raw category emitted %d times, want 0", got)
	}
}

func TestTick_QueryFailureEmitsTerminalError(t *testing.T) {
	stats := &testutil.MockStatsRepository{Err: errors.New("connection refused")}
	svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())
	sink := newRecordingSink()
	sess := &session{rawHashes: make(map[string]string)}

	err := svc.tick(context.Background(), 1, sink, sess)
	if err == nil {
		t.Fatal("tick with failing stats should return an error")
	}

	names := sink.names()
	if len(names) == 0 || names[len(names)-1] != feed.EventError {
		t.Errorf("last event = %v, want a terminal %q event", names, feed.EventError)
	}
}

func TestEvaluate_DBPingFailureBecomesAlert(t *testing.T) {
	stats := &testutil.MockStatsRepository{PingErr: errors.New("dial timeout")}
	svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())

	alerts, err := svc.Evaluate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(alerts) != 1 || alerts[0].ID != feed.AlertDBConnection {
		t.Fatalf("Evaluate() = %+v, want a single %s alert", alerts, feed.AlertDBConnection)
	}
	if alerts[0].Type != feed.TypeError || alerts[0].Priority != feed.PriorityHigh {
		t.Errorf("db alert type/priority = %s/%s, want error/high", alerts[0].Type, alerts[0].Priority)
	}
}

func TestEvaluate_LargeTableAlert(t *testing.T) {
	stats := &testutil.MockStatsRepository{
		LargestTableName: "attendance",
		LargestTableSize: 64 * 1024 * 1024,
	}
	svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())

	alerts, err := svc.Evaluate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(alerts) != 1 || alerts[0].ID != feed.AlertLargeTable {
		t.Fatalf("Evaluate() = %+v, want a single %s alert", alerts, feed.AlertLargeTable)
	}
}

func TestEvaluate_SalesPredicates(t *testing.T) {
	tests := []struct {
		name      string
		today     float64
		yesterday float64
		wantID    string
	}{
		{"sharp decline", 70, 100, feed.AlertSalesDecline},
		{"sharp increase", 130, 100, feed.AlertSalesIncrease},
		{"within band", 110, 100, ""},
		{"no baseline", 500, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now()
			dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			stats := &testutil.MockStatsRepository{
				RevenueFn: func(from, to time.Time) float64 {
					switch {
					case from.Equal(dayStart):
						return tt.today
					case to.Equal(dayStart) && from.Equal(dayStart.Add(-24*time.Hour)):
						return tt.yesterday
					default:
						return 0
					}
				},
			}
			svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())

			alerts, err := svc.Evaluate(context.Background(), 1)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}

			found := ""
			for _, a := range alerts {
				if a.ID == feed.AlertSalesDecline || a.ID == feed.AlertSalesIncrease {
					found = a.ID
				}
			}
			if found != tt.wantID {
				t.Errorf("sales alert = %q, want %q", found, tt.wantID)
			}
		})
	}
}

func TestStream_HeartbeatOnlyWhenIdle(t *testing.T) {
	stats := &testutil.MockStatsRepository{}
	svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())
	svc.cfg.PollInterval = 10 * time.Millisecond
	svc.cfg.HeartbeatInterval = 25 * time.Millisecond

	sink := newRecordingSink()
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := svc.Stream(ctx, 1, "owner@gym.test", sink); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	names := sink.names()
	if len(names) == 0 || names[0] != feed.EventConnected {
		t.Fatalf("first event = %v, want connected", names)
	}
	if sink.count(feed.EventHeartbeat) == 0 {
		t.Error("idle stream emitted no heartbeats")
	}
	if got := sink.count(feed.EventNotifications); got != 0 {
		t.Errorf("idle stream emitted %d notifications events, want 0", got)
	}
}

func TestStream_StopsWhenSinkFails(t *testing.T) {
	stats := &testutil.MockStatsRepository{}
	svc := newTestFeedService(stats, testutil.NewMockMarkerRepository())
	svc.cfg.PollInterval = 10 * time.Millisecond
	svc.cfg.HeartbeatInterval = 20 * time.Millisecond

	sink := newRecordingSink()
	sink.failAfter = 1 // connected goes through, the next write fails

	done := make(chan error, 1)
	go func() {
		done <- svc.Stream(context.Background(), 1, "owner@gym.test", sink)
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Stream() should return an error when the sink fails")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Stream() did not stop after sink failure")
	}
}
