package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/attendance"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
)

type AttendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, rec *attendance.Record) (int64, error) {
	now := time.Now()
	rec.CreatedAt = now
	if rec.CheckedInAt.IsZero() {
		rec.CheckedInAt = now
	}
	if rec.Source == "" {
		rec.Source = attendance.SourceFrontDesk
	}

	query := `
		INSERT INTO attendance (member_id, checked_in_at, source, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		rec.MemberID, rec.CheckedInAt.Format(time.RFC3339), rec.Source, now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to record check-in", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get check-in ID", err)
	}

	return id, nil
}

func (r *AttendanceRepository) ListByMember(ctx context.Context, memberID int64, limit, offset int) ([]*attendance.Record, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM attendance WHERE member_id = ?", memberID).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count check-ins", err)
	}

	query := `
		SELECT id, member_id, checked_in_at, source, created_at
		FROM attendance WHERE member_id = ? ORDER BY checked_in_at DESC LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list check-ins", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, rows.Err()
}

func (r *AttendanceRepository) ListRecent(ctx context.Context, since time.Time, limit int) ([]*attendance.Record, error) {
	query := `
		SELECT id, member_id, checked_in_at, source, created_at
		FROM attendance WHERE checked_in_at >= ? ORDER BY checked_in_at DESC LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, since.Format(time.RFC3339), limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list recent check-ins", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	return records, rows.Err()
}

func scanRecords(rows *sql.Rows) ([]*attendance.Record, error) {
	records := make([]*attendance.Record, 0, 50)
	for rows.Next() {
		var rec attendance.Record
		var checkedInAt, createdAt string
		if err := rows.Scan(&rec.ID, &rec.MemberID, &checkedInAt, &rec.Source, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan check-in", err)
		}
		rec.CheckedInAt = parseTime(checkedInAt)
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, &rec)
	}
	return records, nil
}
