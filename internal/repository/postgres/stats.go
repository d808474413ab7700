package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
)

// StatsRepository serves the read-only aggregates behind the alert predicates.
// Every method is a single query; the feed service decides what the numbers mean.
type StatsRepository struct {
	db     *sql.DB
	driver string
}

func NewStatsRepository(db *sql.DB, driver string) feed.StatsRepository {
	return &StatsRepository{db: db, driver: driver}
}

func (r *StatsRepository) NewMemberCount(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM members WHERE joined_at >= ?", since.Format(time.RFC3339))
}

func (r *StatsRepository) NewMembers(ctx context.Context, since time.Time, limit int) ([]feed.MemberActivity, error) {
	query := `
		SELECT id, full_name, joined_at FROM members
		WHERE joined_at >= ? ORDER BY joined_at DESC LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, since.Format(time.RFC3339), limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query new members", err)
	}
	defer rows.Close()

	var members []feed.MemberActivity
	for rows.Next() {
		var m feed.MemberActivity
		var joinedAt string
		if err := rows.Scan(&m.ID, &m.FullName, &joinedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan new member", err)
		}
		m.JoinedAt = parseTime(joinedAt)
		members = append(members, m)
	}

	return members, rows.Err()
}

func (r *StatsRepository) PendingPaymentCount(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM payments WHERE status = 'pending'")
}

func (r *StatsRepository) PendingPayments(ctx context.Context, limit int) ([]feed.PendingPayment, error) {
	query := `
		SELECT p.id, m.full_name, p.amount, p.created_at
		FROM payments p JOIN members m ON m.id = p.member_id
		WHERE p.status = 'pending' ORDER BY p.created_at DESC LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query pending payments", err)
	}
	defer rows.Close()

	var payments []feed.PendingPayment
	for rows.Next() {
		var p feed.PendingPayment
		var createdAt string
		if err := rows.Scan(&p.ID, &p.MemberName, &p.Amount, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan pending payment", err)
		}
		p.CreatedAt = parseTime(createdAt)
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *StatsRepository) EquipmentStatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM equipment GROUP BY status")
	if err != nil {
		return nil, errors.DatabaseError("Failed to count equipment by status", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan equipment count", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *StatsRepository) EquipmentIssues(ctx context.Context, limit int) ([]feed.EquipmentIssue, error) {
	query := `
		SELECT id, name, status FROM equipment
		WHERE status = 'Maintenance' ORDER BY updated_at DESC LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query equipment issues", err)
	}
	defer rows.Close()

	var issues []feed.EquipmentIssue
	for rows.Next() {
		var e feed.EquipmentIssue
		if err := rows.Scan(&e.ID, &e.Name, &e.Status); err != nil {
			return nil, errors.DatabaseError("Failed to scan equipment issue", err)
		}
		issues = append(issues, e)
	}

	return issues, rows.Err()
}

func (r *StatsRepository) ExpiringMembershipCount(ctx context.Context, within time.Duration) (int, error) {
	// A member's effective expiry is the latest across all approved payments;
	// the window applies to that, so a renewal takes the member out of it.
	now := time.Now()
	return r.count(ctx, `
		SELECT COUNT(*) FROM (
			SELECT member_id FROM payments
			WHERE status = 'approved' AND expires_at IS NOT NULL
			GROUP BY member_id
			HAVING MAX(expires_at) >= ? AND MAX(expires_at) <= ?
		) expiring
	`, now.Format(time.RFC3339), now.Add(within).Format(time.RFC3339))
}

func (r *StatsRepository) ExpiringMemberships(ctx context.Context, within time.Duration, limit int) ([]feed.ExpiringMembership, error) {
	now := time.Now()
	query := `
		SELECT p.member_id, m.full_name, MAX(p.expires_at) AS expires_at
		FROM payments p JOIN members m ON m.id = p.member_id
		WHERE p.status = 'approved' AND p.expires_at IS NOT NULL
		GROUP BY p.member_id, m.full_name
		HAVING MAX(p.expires_at) >= ? AND MAX(p.expires_at) <= ?
		ORDER BY expires_at ASC LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query,
		now.Format(time.RFC3339), now.Add(within).Format(time.RFC3339), limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query expiring memberships", err)
	}
	defer rows.Close()

	var expiring []feed.ExpiringMembership
	for rows.Next() {
		var e feed.ExpiringMembership
		var expiresAt string
		if err := rows.Scan(&e.MemberID, &e.MemberName, &expiresAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan expiring membership", err)
		}
		e.ExpiresAt = parseTime(expiresAt)
		expiring = append(expiring, e)
	}

	return expiring, rows.Err()
}

func (r *StatsRepository) IdleMemberCount(ctx context.Context, idleFor time.Duration) (int, error) {
	cutoff := time.Now().Add(-idleFor)
	return r.count(ctx, `
		SELECT COUNT(*) FROM members m
		WHERE m.status = 'active' AND NOT EXISTS (
			SELECT 1 FROM attendance a WHERE a.member_id = m.id AND a.checked_in_at >= ?
		)
	`, cutoff.Format(time.RFC3339))
}

func (r *StatsRepository) IdleMembers(ctx context.Context, idleFor time.Duration, limit int) ([]feed.IdleMember, error) {
	cutoff := time.Now().Add(-idleFor)
	query := `
		SELECT m.id, m.full_name, MAX(a.checked_in_at) AS last_seen
		FROM members m LEFT JOIN attendance a ON a.member_id = m.id
		WHERE m.status = 'active'
		GROUP BY m.id, m.full_name
		HAVING last_seen IS NULL OR last_seen < ?
		ORDER BY last_seen ASC LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, cutoff.Format(time.RFC3339), limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query idle members", err)
	}
	defer rows.Close()

	var idle []feed.IdleMember
	for rows.Next() {
		var m feed.IdleMember
		var lastSeen sql.NullString
		if err := rows.Scan(&m.ID, &m.FullName, &lastSeen); err != nil {
			return nil, errors.DatabaseError("Failed to scan idle member", err)
		}
		if lastSeen.Valid {
			t := parseTime(lastSeen.String)
			m.LastSeen = &t
		}
		idle = append(idle, m)
	}

	return idle, rows.Err()
}

func (r *StatsRepository) FeedbackCount(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM feedback WHERE created_at >= ?", since.Format(time.RFC3339))
}

func (r *StatsRepository) RecentFeedback(ctx context.Context, since time.Time, limit int) ([]feed.FeedbackEntry, error) {
	query := `
		SELECT id, subject, rating, created_at FROM feedback
		WHERE created_at >= ? ORDER BY created_at DESC LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, since.Format(time.RFC3339), limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query recent feedback", err)
	}
	defer rows.Close()

	var entries []feed.FeedbackEntry
	for rows.Next() {
		var f feed.FeedbackEntry
		var subject sql.NullString
		var createdAt string
		if err := rows.Scan(&f.ID, &subject, &f.Rating, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan feedback", err)
		}
		f.Subject = subject.String
		f.CreatedAt = parseTime(createdAt)
		entries = append(entries, f)
	}

	return entries, rows.Err()
}

func (r *StatsRepository) Revenue(ctx context.Context, from, to time.Time) (float64, error) {
	var total sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT SUM(amount) FROM payments
		WHERE status = 'approved' AND paid_at >= ? AND paid_at < ?
	`, from.Format(time.RFC3339), to.Format(time.RFC3339)).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to sum revenue", err)
	}
	return total.Float64, nil
}

func (r *StatsRepository) HighValuePaymentCount(ctx context.Context, minAmount float64, since time.Time) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*) FROM payments
		WHERE status = 'approved' AND amount > ? AND paid_at >= ?
	`, minAmount, since.Format(time.RFC3339))
}

func (r *StatsRepository) PlanMemberCounts(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT p.name, COUNT(m.id) FROM plans p
		LEFT JOIN members m ON m.plan_id = p.id AND m.status = 'active'
		GROUP BY p.name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count members by plan", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan plan count", err)
		}
		counts[name] = count
	}

	return counts, rows.Err()
}

func (r *StatsRepository) AttendanceCount(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM attendance WHERE checked_in_at >= ?", since.Format(time.RFC3339))
}

func (r *StatsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// LargestTable reports the biggest relation and its approximate on-disk size.
// SQLite has no per-table size without dbstat, so the whole file stands in.
func (r *StatsRepository) LargestTable(ctx context.Context) (string, int64, error) {
	if r.driver == "postgres" {
		var name string
		var size int64
		err := r.db.QueryRowContext(ctx, `
			SELECT relname, pg_total_relation_size(relid)
			FROM pg_catalog.pg_statio_user_tables
			ORDER BY pg_total_relation_size(relid) DESC LIMIT 1
		`).Scan(&name, &size)
		if err == sql.ErrNoRows {
			return "", 0, nil
		}
		if err != nil {
			return "", 0, errors.DatabaseError("Failed to query table sizes", err)
		}
		return name, size, nil
	}

	var pageCount, pageSize int64
	if err := r.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return "", 0, errors.DatabaseError("Failed to read page count", err)
	}
	if err := r.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return "", 0, errors.DatabaseError("Failed to read page size", err)
	}
	return "database", pageCount * pageSize, nil
}

func (r *StatsRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to run count query", err)
	}
	return n, nil
}
