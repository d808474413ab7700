package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/feedback"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
)

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) feedback.Repository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *feedback.Feedback) (int64, error) {
	now := time.Now()
	f.CreatedAt = now

	query := `
		INSERT INTO feedback (member_id, subject, message, rating, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		f.MemberID, f.Subject, f.Message, f.Rating, now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create feedback", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get feedback ID", err)
	}

	return id, nil
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id int64) (*feedback.Feedback, error) {
	query := `SELECT id, member_id, subject, message, rating, created_at FROM feedback WHERE id = ?`

	var f feedback.Feedback
	var subject, message sql.NullString
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.MemberID, &subject, &message, &f.Rating, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Feedback")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get feedback", err)
	}

	f.Subject = subject.String
	f.Message = message.String
	f.CreatedAt = parseTime(createdAt)
	return &f, nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM feedback WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete feedback", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Feedback")
	}

	return nil
}

func (r *FeedbackRepository) ListWithPagination(ctx context.Context, limit, offset int) ([]*feedback.Feedback, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM feedback").Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count feedback", err)
	}

	query := `
		SELECT id, member_id, subject, message, rating, created_at
		FROM feedback ORDER BY created_at DESC LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list feedback", err)
	}
	defer rows.Close()

	entries := make([]*feedback.Feedback, 0, limit)
	for rows.Next() {
		var f feedback.Feedback
		var subject, message sql.NullString
		var createdAt string
		if err := rows.Scan(&f.ID, &f.MemberID, &subject, &message, &f.Rating, &createdAt); err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan feedback", err)
		}
		f.Subject = subject.String
		f.Message = message.String
		f.CreatedAt = parseTime(createdAt)
		entries = append(entries, &f)
	}

	return entries, total, rows.Err()
}
