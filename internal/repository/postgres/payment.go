package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/payment"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) payment.Repository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) (int64, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = payment.StatusPending
	}

	query := `
		INSERT INTO payments (member_id, plan_id, amount, method, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.MemberID, p.PlanID, p.Amount, p.Method, p.Status,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create payment", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get payment ID", err)
	}

	return id, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*payment.Payment, error) {
	query := `
		SELECT id, member_id, plan_id, amount, method, status, paid_at, expires_at, created_at
		FROM payments WHERE id = ?
	`

	var p payment.Payment
	var planID sql.NullInt64
	var paidAt, expiresAt sql.NullString
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.MemberID, &planID, &p.Amount, &p.Method, &p.Status, &paidAt, &expiresAt, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Payment")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get payment", err)
	}

	p.PlanID = planID.Int64
	if paidAt.Valid {
		t := parseTime(paidAt.String)
		p.PaidAt = &t
	}
	if expiresAt.Valid {
		t := parseTime(expiresAt.String)
		p.ExpiresAt = &t
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

// UpdateStatus transitions a payment. Approval stamps paid_at and derives
// expires_at from the plan's duration so expiry queries don't need a join.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	now := time.Now()

	if status == payment.StatusApproved {
		var durationDays sql.NullInt64
		err := r.db.QueryRowContext(ctx, `
			SELECT p.duration_days FROM payments pay
			LEFT JOIN plans p ON p.id = pay.plan_id
			WHERE pay.id = ?
		`, id).Scan(&durationDays)
		if err == sql.ErrNoRows {
			return errors.NotFound("Payment")
		}
		if err != nil {
			return errors.DatabaseError("Failed to resolve payment plan", err)
		}

		days := int64(30)
		if durationDays.Valid && durationDays.Int64 > 0 {
			days = durationDays.Int64
		}
		expires := now.AddDate(0, 0, int(days))

		_, err = r.db.ExecContext(ctx, `
			UPDATE payments SET status = ?, paid_at = ?, expires_at = ?, updated_at = ? WHERE id = ?
		`, status, now.Format(time.RFC3339), expires.Format(time.RFC3339), now.Format(time.RFC3339), id)
		if err != nil {
			return errors.DatabaseError("Failed to update payment status", err)
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE payments SET status = ?, updated_at = ? WHERE id = ?",
		status, now.Format(time.RFC3339), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update payment status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Payment")
	}

	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete payment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Payment")
	}

	return nil
}

func (r *PaymentRepository) ListWithPagination(ctx context.Context, filter payment.Filter, limit, offset int) ([]*payment.Payment, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.MemberID != 0 {
		where = append(where, "member_id = ?")
		args = append(args, filter.MemberID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Method != "" {
		where = append(where, "method = ?")
		args = append(args, filter.Method)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payments WHERE %s", whereClause)
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count payments", err)
	}

	query := fmt.Sprintf(`
		SELECT id, member_id, plan_id, amount, method, status, paid_at, expires_at, created_at
		FROM payments WHERE %s ORDER BY id DESC LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list payments", err)
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0, limit)
	for rows.Next() {
		var p payment.Payment
		var planID sql.NullInt64
		var paidAt, expiresAt sql.NullString
		var createdAt string
		err := rows.Scan(&p.ID, &p.MemberID, &planID, &p.Amount, &p.Method, &p.Status, &paidAt, &expiresAt, &createdAt)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan payment", err)
		}
		p.PlanID = planID.Int64
		if paidAt.Valid {
			t := parseTime(paidAt.String)
			p.PaidAt = &t
		}
		if expiresAt.Valid {
			t := parseTime(expiresAt.String)
			p.ExpiresAt = &t
		}
		p.CreatedAt = parseTime(createdAt)
		payments = append(payments, &p)
	}

	return payments, total, rows.Err()
}
