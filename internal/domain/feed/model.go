package feed

import "time"

// Alert is one entry in the admin notification feed. Alerts are derived fresh
// from aggregate queries on every poll and never persisted; only the read flag
// survives, keyed by the alert's category id.
type Alert struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Priority  string `json:"priority"`
	Read      bool   `json:"read"`
	Timestamp int64  `json:"timestamp"`
}

// Alert types. The browser client styles each value distinctly; "alert" is
// part of that contract even though no built-in predicate emits it today.
const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"
	TypeAlert   = "alert"
)

// Alert priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PriorityRank maps a priority to its sort weight, higher first
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Alert ids. The id identifies the alert's semantic category, not a row: a
// read-marker for an id dismisses that category of warning until cleared.
const (
	AlertNewMembersToday       = "new_members_today"
	AlertPendingPayments       = "pending_payments"
	AlertEquipmentMaintenance  = "equipment_maintenance"
	AlertExpiringMemberships   = "expiring_memberships"
	AlertLowAttendance         = "low_attendance"
	AlertNewFeedback           = "new_feedback"
	AlertSalesDecline          = "sales_decline"
	AlertSalesIncrease         = "sales_increase"
	AlertWeeklySalesDecline    = "weekly_sales_decline"
	AlertRevenueGrowthTarget   = "revenue_growth_target"
	AlertRevenueExceedingGoal  = "revenue_exceeding_target"
	AlertHighValueTransactions = "high_value_transactions"
	AlertPlanImbalance         = "plan_imbalance"
	AlertInactiveMembers       = "inactive_members"
	AlertPeakHoursAnalysis     = "peak_hours_analysis"
	AlertEquipmentHeavy        = "equipment_maintenance_heavy"
	AlertEquipmentUnderused    = "equipment_underutilized"
	AlertDBConnection          = "db_connection"
	AlertLargeTable            = "large_table"
)

// Stream event names
const (
	EventConnected           = "connected"
	EventNotifications       = "notifications"
	EventCountUpdate         = "count_update"
	EventNewMembers          = "new_members"
	EventPendingPayments     = "pending_payments"
	EventEquipmentIssues     = "equipment_issues"
	EventExpiringMemberships = "expiring_memberships"
	EventLowAttendance       = "low_attendance"
	EventNewFeedback         = "new_feedback"
	EventSystemAlerts        = "system_alerts"
	EventHeartbeat           = "heartbeat"
	EventError               = "error"
)

// ReadMarker records that an admin has acknowledged an alert id. Keyed by the
// exact (admin_id, alert_id) pair.
type ReadMarker struct {
	AdminID   int64     `json:"admin_id"`
	AlertID   string    `json:"alert_id"`
	Category  string    `json:"category,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Raw feed row types. These back the per-category events that accompany the
// diffed alert list.

// MemberActivity is a recent signup row
type MemberActivity struct {
	ID       int64     `json:"id"`
	FullName string    `json:"full_name"`
	JoinedAt time.Time `json:"joined_at"`
}

// PendingPayment is an unapproved payment row
type PendingPayment struct {
	ID         int64     `json:"id"`
	MemberName string    `json:"member_name"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// EquipmentIssue is an equipment row needing attention
type EquipmentIssue struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ExpiringMembership is a membership approaching its expiry date
type ExpiringMembership struct {
	MemberID   int64     `json:"member_id"`
	MemberName string    `json:"member_name"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IdleMember is a member with no recent check-in
type IdleMember struct {
	ID       int64      `json:"id"`
	FullName string     `json:"full_name"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// FeedbackEntry is a recent feedback row
type FeedbackEntry struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
