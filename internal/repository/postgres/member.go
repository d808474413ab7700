package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/member"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) member.Repository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) (int64, error) {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.JoinedAt.IsZero() {
		m.JoinedAt = now
	}

	query := `
		INSERT INTO members (full_name, email, phone, plan_id, status, joined_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		m.FullName, m.Email, m.Phone, m.PlanID, m.Status,
		m.JoinedAt.Format(time.RFC3339), now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create member", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get member ID", err)
	}

	return id, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*member.Member, error) {
	query := `
		SELECT id, full_name, email, phone, plan_id, status, joined_at, created_at
		FROM members WHERE id = ?
	`

	var m member.Member
	var phone sql.NullString
	var planID sql.NullInt64
	var joinedAt, createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.FullName, &m.Email, &phone, &planID, &m.Status, &joinedAt, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Member")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get member", err)
	}

	m.Phone = phone.String
	m.PlanID = planID.Int64
	m.JoinedAt = parseTime(joinedAt)
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}

func (r *MemberRepository) Update(ctx context.Context, m *member.Member) error {
	m.UpdatedAt = time.Now()

	query := `
		UPDATE members SET full_name = ?, email = ?, phone = ?, plan_id = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		m.FullName, m.Email, m.Phone, m.PlanID, m.Status,
		m.UpdatedAt.Format(time.RFC3339), m.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update member", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Member")
	}

	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete member", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Member")
	}

	return nil
}

func (r *MemberRepository) ListWithPagination(ctx context.Context, filter member.Filter, limit, offset int) ([]*member.Member, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.PlanID != 0 {
		where = append(where, "plan_id = ?")
		args = append(args, filter.PlanID)
	}
	if filter.Search != "" {
		where = append(where, "(full_name LIKE ? OR email LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM members WHERE %s", whereClause)
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count members", err)
	}

	query := fmt.Sprintf(`
		SELECT id, full_name, email, phone, plan_id, status, joined_at, created_at
		FROM members WHERE %s ORDER BY id DESC LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list members", err)
	}
	defer rows.Close()

	members := make([]*member.Member, 0, limit)
	for rows.Next() {
		var m member.Member
		var phone sql.NullString
		var planID sql.NullInt64
		var joinedAt, createdAt string
		err := rows.Scan(&m.ID, &m.FullName, &m.Email, &phone, &planID, &m.Status, &joinedAt, &createdAt)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan member", err)
		}
		m.Phone = phone.String
		m.PlanID = planID.Int64
		m.JoinedAt = parseTime(joinedAt)
		m.CreatedAt = parseTime(createdAt)
		members = append(members, &m)
	}

	return members, total, rows.Err()
}

func (r *MemberRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM members GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count members by status", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan count", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
