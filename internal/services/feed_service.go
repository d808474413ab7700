package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/gymdesk/gymdesk/internal/config"
	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
	"github.com/gymdesk/gymdesk/internal/pkg/metrics"
)

const rawFeedLimit = 5

// FeedService drives the admin notification feed: it re-evaluates the alert
// predicates on a fixed cadence, diffs the result against what each connection
// last saw, and pushes only changes. Alerts are never stored; read-markers are
// the only persistent state.
type FeedService struct {
	markers feed.MarkerRepository
	stats   feed.StatsRepository
	cfg     config.FeedConfig
	logger  *logger.Logger
	now     func() time.Time
}

// NewFeedService creates a new notification feed service
func NewFeedService(markers feed.MarkerRepository, stats feed.StatsRepository, cfg config.FeedConfig, log *logger.Logger) *FeedService {
	return &FeedService{
		markers: markers,
		stats:   stats,
		cfg:     cfg,
		logger:  log,
		now:     time.Now,
	}
}

// session is the per-connection diff state. It lives exactly as long as the
// stream; a reconnect starts blank and re-announces everything.
type session struct {
	alertHash string
	rawHashes map[string]string
	lastPoll  time.Time
	lastBeat  time.Time
}

// Stream runs the polling loop for one admin connection. It returns when the
// context is cancelled, a write to sink fails, or a tick errors. A tick error
// emits a terminal error event first.
func (s *FeedService) Stream(ctx context.Context, adminID int64, email string, sink feed.EventSink) error {
	metrics.StreamOpened()
	defer metrics.StreamClosed()

	log := s.logger.WithFields(map[string]interface{}{"admin_id": adminID})
	log.Info("notification stream opened")

	if err := s.send(sink, feed.EventConnected, map[string]interface{}{
		"admin_id":  adminID,
		"email":     email,
		"timestamp": s.now().Unix(),
	}); err != nil {
		return err
	}

	sess := &session{rawHashes: make(map[string]string)}

	// Seed the hash with the empty list so a quiet system emits nothing
	// until a predicate actually fires.
	sess.alertHash, _ = alertsHash(nil)

	// Run the first poll immediately so a fresh connection sees the current
	// state without waiting a full interval.
	if err := s.tick(ctx, adminID, sink, sess); err != nil {
		return err
	}
	sess.lastPoll = s.now()
	sess.lastBeat = s.now()

	// 1s granularity; the poll and heartbeat cadences are derived from it.
	// Sub-second poll intervals tighten the granularity to match.
	granularity := time.Second
	if s.cfg.PollInterval < granularity {
		granularity = s.cfg.PollInterval
	}
	ticker := time.NewTicker(granularity)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("notification stream closed")
			return nil
		case <-ticker.C:
			now := s.now()

			if now.Sub(sess.lastPoll) >= s.cfg.PollInterval {
				if err := s.tick(ctx, adminID, sink, sess); err != nil {
					log.WithError(err).Error("notification stream terminated")
					return err
				}
				sess.lastPoll = now
			}

			if now.Sub(sess.lastBeat) >= s.cfg.HeartbeatInterval {
				if err := s.send(sink, feed.EventHeartbeat, map[string]interface{}{
					"timestamp": now.Unix(),
				}); err != nil {
					return err
				}
				sess.lastBeat = now
			}
		}
	}
}

// tick evaluates one poll iteration: diffed alert list, then the raw feed
// categories. Any failure is fatal to the connection after a terminal error
// event; the client reconnects with fresh state.
func (s *FeedService) tick(ctx context.Context, adminID int64, sink feed.EventSink, sess *session) error {
	start := s.now()

	tickCtx := ctx
	if s.cfg.TickTimeout > 0 {
		var cancel context.CancelFunc
		tickCtx, cancel = context.WithTimeout(ctx, s.cfg.TickTimeout)
		defer cancel()
	}

	alerts, err := s.Evaluate(tickCtx, adminID)
	if err != nil {
		metrics.RecordTick("error", s.now().Sub(start))
		_ = s.send(sink, feed.EventError, map[string]interface{}{"error": "feed evaluation failed"})
		return err
	}

	hash, err := alertsHash(alerts)
	if err != nil {
		metrics.RecordTick("error", s.now().Sub(start))
		_ = s.send(sink, feed.EventError, map[string]interface{}{"error": "feed evaluation failed"})
		return err
	}

	if hash != sess.alertHash {
		payload := map[string]interface{}{
			"notifications": alerts,
			"unread_count":  len(alerts),
		}
		if err := s.send(sink, feed.EventNotifications, payload); err != nil {
			return err
		}
		if err := s.send(sink, feed.EventCountUpdate, map[string]interface{}{
			"unread_count": len(alerts),
		}); err != nil {
			return err
		}
		sess.alertHash = hash
	}

	if err := s.emitRawFeeds(tickCtx, sink, sess); err != nil {
		metrics.RecordTick("error", s.now().Sub(start))
		if _, ok := err.(*sinkError); !ok {
			_ = s.send(sink, feed.EventError, map[string]interface{}{"error": "feed evaluation failed"})
		}
		return err
	}

	metrics.RecordTick("ok", s.now().Sub(start))
	return nil
}

type sinkError struct{ err error }

func (e *sinkError) Error() string { return e.err.Error() }
func (e *sinkError) Unwrap() error { return e.err }

// emitRawFeeds runs the per-category feed queries and emits each category
// whose result set changed since the last tick. Empty categories are hashed
// too so a category that empties out re-emits once more as [].
func (s *FeedService) emitRawFeeds(ctx context.Context, sink feed.EventSink, sess *session) error {
	now := s.now()

	newMembers, err := s.stats.NewMembers(ctx, now.Add(-time.Hour), rawFeedLimit)
	if err != nil {
		return err
	}
	if err := s.emitRawCategory(sink, sess, feed.EventNewMembers, newMembers, len(newMembers)); err != nil {
		return err
	}

	pending, err := s.stats.PendingPayments(ctx, rawFeedLimit)
	if err != nil {
		return err
	}
	if err := s.emitRawCategory(sink, sess, feed.EventPendingPayments, pending, len(pending)); err != nil {
		return err
	}

	issues, err := s.stats.EquipmentIssues(ctx, rawFeedLimit)
	if err != nil {
		return err
	}
	if err := s.emitRawCategory(sink, sess, feed.EventEquipmentIssues, issues, len(issues)); err != nil {
		return err
	}

	expiring, err := s.stats.ExpiringMemberships(ctx, s.expiryWindow(), rawFeedLimit)
	if err != nil {
		return err
	}
	if err := s.emitRawCategory(sink, sess, feed.EventExpiringMemberships, expiring, len(expiring)); err != nil {
		return err
	}

	idle, err := s.stats.IdleMembers(ctx, s.days(s.cfg.LowAttendanceDays), rawFeedLimit)
	if err != nil {
		return err
	}
	if err := s.emitRawCategory(sink, sess, feed.EventLowAttendance, idle, len(idle)); err != nil {
		return err
	}

	fb, err := s.stats.RecentFeedback(ctx, now.Add(-24*time.Hour), rawFeedLimit)
	if err != nil {
		return err
	}
	if err := s.emitRawCategory(sink, sess, feed.EventNewFeedback, fb, len(fb)); err != nil {
		return err
	}

	system, err := s.systemAlerts(ctx)
	if err != nil {
		return err
	}
	return s.emitRawCategory(sink, sess, feed.EventSystemAlerts, system, len(system))
}

// emitRawCategory sends the category event when its content hash moved and the
// result set is non-empty, or when a previously non-empty set became empty.
func (s *FeedService) emitRawCategory(sink feed.EventSink, sess *session, event string, payload interface{}, n int) error {
	hash, err := hashJSON(payload)
	if err != nil {
		return err
	}
	prev, seen := sess.rawHashes[event]
	if hash == prev {
		return nil
	}
	sess.rawHashes[event] = hash
	if n == 0 && !seen {
		return nil
	}
	if err := s.send(sink, event, map[string]interface{}{
		"items": payload,
		"count": n,
	}); err != nil {
		return &sinkError{err: err}
	}
	return nil
}

// systemAlerts covers the infrastructure-level checks. A failed liveness ping
// is reported as an alert rather than a tick error so the admin sees it.
func (s *FeedService) systemAlerts(ctx context.Context) ([]map[string]interface{}, error) {
	var alerts []map[string]interface{}

	if err := s.stats.Ping(ctx); err != nil {
		alerts = append(alerts, map[string]interface{}{
			"id":      feed.AlertDBConnection,
			"message": "Database connection check failed",
		})
		// No point checking table sizes on a dead connection.
		return alerts, nil
	}

	name, size, err := s.stats.LargestTable(ctx)
	if err != nil {
		return nil, err
	}
	if size > s.cfg.LargeTableBytes {
		alerts = append(alerts, map[string]interface{}{
			"id":      feed.AlertLargeTable,
			"message": fmt.Sprintf("Table %s has grown to %d MB", name, size/(1024*1024)),
		})
	}

	return alerts, nil
}

// Evaluate runs every alert predicate and returns the eligible set for the
// admin: condition true, not marked read, priority then recency sorted,
// truncated to the configured maximum.
func (s *FeedService) Evaluate(ctx context.Context, adminID int64) ([]feed.Alert, error) {
	candidates, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	read, err := s.markers.ReadIDs(ctx, adminID)
	if err != nil {
		return nil, err
	}

	eligible := make([]feed.Alert, 0, len(candidates))
	for _, a := range candidates {
		if read[a.ID] {
			continue
		}
		eligible = append(eligible, a)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		ri, rj := feed.PriorityRank(eligible[i].Priority), feed.PriorityRank(eligible[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return eligible[i].Timestamp > eligible[j].Timestamp
	})

	if len(eligible) > s.cfg.MaxAlerts {
		eligible = eligible[:s.cfg.MaxAlerts]
	}

	return eligible, nil
}

// UnreadCount returns the number of currently eligible alerts for the admin
func (s *FeedService) UnreadCount(ctx context.Context, adminID int64) (int, error) {
	alerts, err := s.Evaluate(ctx, adminID)
	if err != nil {
		return 0, err
	}
	return len(alerts), nil
}

// MarkRead upserts a read-marker for the alert id and returns the fresh
// unread count. Idempotent; concurrent calls are last-write-wins.
func (s *FeedService) MarkRead(ctx context.Context, adminID int64, alertID, category string) (int, error) {
	if alertID == "" {
		return 0, errors.BadRequest("notification_id is required")
	}

	marker := &feed.ReadMarker{
		AdminID:  adminID,
		AlertID:  alertID,
		Category: category,
		IsRead:   true,
	}
	if err := s.markers.Upsert(ctx, marker); err != nil {
		return 0, err
	}

	return s.UnreadCount(ctx, adminID)
}

// MarkAllRead upserts markers for every predicate that is currently true,
// zeroing the admin's unread count on the next tick.
func (s *FeedService) MarkAllRead(ctx context.Context, adminID int64) error {
	candidates, err := s.collect(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(candidates))
	for _, a := range candidates {
		ids = append(ids, a.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	return s.markers.UpsertAll(ctx, adminID, ids)
}

// ClearAll deletes all of the admin's read-markers. Conditions that are still
// true will re-raise their alerts on the following tick.
func (s *FeedService) ClearAll(ctx context.Context, adminID int64) error {
	n, err := s.markers.DeleteAll(ctx, adminID)
	if err != nil {
		return err
	}
	s.logger.Debugf("cleared %d read markers for admin %d", n, adminID)
	return nil
}

// collect evaluates all predicates and returns every alert whose condition is
// true, before read-marker filtering.
func (s *FeedService) collect(ctx context.Context) ([]feed.Alert, error) {
	now := s.now()
	ts := now.Unix()
	var alerts []feed.Alert

	add := func(id, title, message, typ, priority string) {
		alerts = append(alerts, feed.Alert{
			ID:        id,
			Title:     title,
			Message:   message,
			Type:      typ,
			Priority:  priority,
			Timestamp: ts,
		})
	}

	newMembers, err := s.stats.NewMemberCount(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	if newMembers > 0 {
		add(feed.AlertNewMembersToday, "New Members",
			fmt.Sprintf("%d new member(s) joined in the last 24 hours", newMembers),
			feed.TypeInfo, feed.PriorityMedium)
	}

	pending, err := s.stats.PendingPaymentCount(ctx)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		add(feed.AlertPendingPayments, "Pending Payments",
			fmt.Sprintf("%d payment(s) awaiting approval", pending),
			feed.TypeWarning, feed.PriorityHigh)
	}

	equipCounts, err := s.stats.EquipmentStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	maintenance := equipCounts["Maintenance"]
	if maintenance > 0 {
		add(feed.AlertEquipmentMaintenance, "Equipment Maintenance",
			fmt.Sprintf("%d equipment item(s) under maintenance", maintenance),
			feed.TypeWarning, feed.PriorityMedium)
	}
	if maintenance > 2 {
		add(feed.AlertEquipmentHeavy, "Heavy Maintenance Load",
			fmt.Sprintf("%d equipment items are down at once", maintenance),
			feed.TypeWarning, feed.PriorityMedium)
	}
	if available := equipCounts["Available"]; available > 5 {
		add(feed.AlertEquipmentUnderused, "Underutilized Equipment",
			fmt.Sprintf("%d equipment items are sitting idle", available),
			feed.TypeInfo, feed.PriorityLow)
	}

	expiring, err := s.stats.ExpiringMembershipCount(ctx, s.expiryWindow())
	if err != nil {
		return nil, err
	}
	if expiring > 0 {
		add(feed.AlertExpiringMemberships, "Expiring Memberships",
			fmt.Sprintf("%d membership(s) expire within %d days", expiring, s.cfg.ExpiryWindowDays),
			feed.TypeWarning, feed.PriorityHigh)
	}

	lowAttendance, err := s.stats.IdleMemberCount(ctx, s.days(s.cfg.LowAttendanceDays))
	if err != nil {
		return nil, err
	}
	if lowAttendance > 0 {
		add(feed.AlertLowAttendance, "Low Attendance",
			fmt.Sprintf("%d member(s) have not checked in for %d+ days", lowAttendance, s.cfg.LowAttendanceDays),
			feed.TypeWarning, feed.PriorityMedium)
	}

	inactive, err := s.stats.IdleMemberCount(ctx, s.days(s.cfg.InactiveDays))
	if err != nil {
		return nil, err
	}
	if inactive > 0 {
		add(feed.AlertInactiveMembers, "Inactive Members",
			fmt.Sprintf("%d member(s) have not checked in for %d+ days", inactive, s.cfg.InactiveDays),
			feed.TypeWarning, feed.PriorityMedium)
	}

	fbCount, err := s.stats.FeedbackCount(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	if fbCount > 0 {
		add(feed.AlertNewFeedback, "New Feedback",
			fmt.Sprintf("%d new feedback entrie(s) in the last 24 hours", fbCount),
			feed.TypeInfo, feed.PriorityLow)
	}

	if err := s.collectSales(ctx, now, add); err != nil {
		return nil, err
	}

	highValue, err := s.stats.HighValuePaymentCount(ctx, s.cfg.HighValueAmount, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	if highValue > 0 {
		add(feed.AlertHighValueTransactions, "High-Value Transactions",
			fmt.Sprintf("%d payment(s) over %.0f in the last 24 hours", highValue, s.cfg.HighValueAmount),
			feed.TypeSuccess, feed.PriorityLow)
	}

	planCounts, err := s.stats.PlanMemberCounts(ctx)
	if err != nil {
		return nil, err
	}
	if maxPlan, minPlan, ratio, ok := planImbalance(planCounts); ok && ratio > s.cfg.PlanImbalanceRatio {
		add(feed.AlertPlanImbalance, "Plan Imbalance",
			fmt.Sprintf("%s has %.0fx the members of %s", maxPlan, ratio, minPlan),
			feed.TypeWarning, feed.PriorityMedium)
	}

	weekAttendance, err := s.stats.AttendanceCount(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, err
	}
	if weekAttendance > 0 {
		add(feed.AlertPeakHoursAnalysis, "Peak Hours",
			fmt.Sprintf("%d check-in(s) recorded this week", weekAttendance),
			feed.TypeInfo, feed.PriorityLow)
	}

	if err := s.stats.Ping(ctx); err != nil {
		add(feed.AlertDBConnection, "Database Connection",
			"Database liveness check failed", feed.TypeError, feed.PriorityHigh)
	} else {
		name, size, err := s.stats.LargestTable(ctx)
		if err != nil {
			return nil, err
		}
		if size > s.cfg.LargeTableBytes {
			add(feed.AlertLargeTable, "Large Table",
				fmt.Sprintf("Table %s has grown to %d MB", name, size/(1024*1024)),
				feed.TypeError, feed.PriorityHigh)
		}
	}

	return alerts, nil
}

// collectSales evaluates the revenue predicates: day-over-day delta, trailing
// 3-day average against the prior 4 days, and month-over-month growth against
// the configured target.
func (s *FeedService) collectSales(ctx context.Context, now time.Time, add func(id, title, message, typ, priority string)) error {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.stats.Revenue(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return err
	}
	yesterday, err := s.stats.Revenue(ctx, dayStart.Add(-24*time.Hour), dayStart)
	if err != nil {
		return err
	}

	if yesterday > 0 {
		delta := (today - yesterday) / yesterday * 100
		if delta <= -s.cfg.SalesDeltaPercent {
			add(feed.AlertSalesDecline, "Sales Decline",
				fmt.Sprintf("Today's revenue is down %.0f%% from yesterday", -delta),
				feed.TypeWarning, feed.PriorityHigh)
		} else if delta >= s.cfg.SalesDeltaPercent {
			add(feed.AlertSalesIncrease, "Sales Increase",
				fmt.Sprintf("Today's revenue is up %.0f%% from yesterday", delta),
				feed.TypeSuccess, feed.PriorityLow)
		}
	}

	recent, err := s.stats.Revenue(ctx, dayStart.Add(-3*24*time.Hour), dayStart)
	if err != nil {
		return err
	}
	prior, err := s.stats.Revenue(ctx, dayStart.Add(-7*24*time.Hour), dayStart.Add(-3*24*time.Hour))
	if err != nil {
		return err
	}
	recentAvg := recent / 3
	priorAvg := prior / 4
	if priorAvg > 0 && recentAvg < 0.7*priorAvg {
		add(feed.AlertWeeklySalesDecline, "Weekly Sales Decline",
			"Average daily revenue over the last 3 days is below 70% of the prior week",
			feed.TypeWarning, feed.PriorityMedium)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	thisMonth, err := s.stats.Revenue(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return err
	}
	lastMonth, err := s.stats.Revenue(ctx, prevMonthStart, monthStart)
	if err != nil {
		return err
	}

	if lastMonth > 0 {
		growth := (thisMonth - lastMonth) / lastMonth * 100
		if growth < s.cfg.GrowthTargetPct {
			add(feed.AlertRevenueGrowthTarget, "Revenue Growth Target",
				fmt.Sprintf("Month-over-month growth is %.1f%%, below the %.0f%% target", growth, s.cfg.GrowthTargetPct),
				feed.TypeWarning, feed.PriorityHigh)
		} else {
			add(feed.AlertRevenueExceedingGoal, "Revenue Exceeding Target",
				fmt.Sprintf("Month-over-month growth is %.1f%%, above the %.0f%% target", growth, s.cfg.GrowthTargetPct),
				feed.TypeSuccess, feed.PriorityLow)
		}
	}

	return nil
}

func (s *FeedService) send(sink feed.EventSink, event string, payload interface{}) error {
	if err := sink.Send(event, payload); err != nil {
		return err
	}
	metrics.RecordEvent(event)
	return nil
}

func (s *FeedService) expiryWindow() time.Duration {
	return s.days(s.cfg.ExpiryWindowDays)
}

func (s *FeedService) days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// planImbalance returns the most and least subscribed plans and their ratio.
// Plans with zero members are skipped so an unused plan does not trip the
// alert by itself.
func planImbalance(counts map[string]int) (maxPlan, minPlan string, ratio float64, ok bool) {
	maxN, minN := -1, -1
	for name, n := range counts {
		if n == 0 {
			continue
		}
		if maxN < 0 || n > maxN {
			maxN, maxPlan = n, name
		}
		if minN < 0 || n < minN {
			minN, minPlan = n, name
		}
	}
	if maxN < 0 || minN <= 0 || maxPlan == minPlan {
		return "", "", 0, false
	}
	return maxPlan, minPlan, float64(maxN) / float64(minN), true
}

// alertsHash hashes only the stable fields of the alert list. Timestamp is
// excluded: it is stamped at evaluation time, so including it would make
// every tick look changed and break suppression.
func alertsHash(alerts []feed.Alert) (string, error) {
	stable := make([][5]string, len(alerts))
	for i, a := range alerts {
		stable[i] = [5]string{a.ID, a.Title, a.Message, a.Type, a.Priority}
	}
	return hashJSON(stable)
}

// hashJSON is the content hash behind the diff suppression. JSON field order
// is deterministic for struct slices, so equal lists hash equal.
func hashJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
