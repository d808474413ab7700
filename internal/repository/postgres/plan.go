package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/plan"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
)

type PlanRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) plan.Repository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan) (int64, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO plans (name, price, duration_days, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Price, p.DurationDays, p.Description,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create plan", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get plan ID", err)
	}

	return id, nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*plan.Plan, error) {
	query := `SELECT id, name, price, duration_days, description, created_at FROM plans WHERE id = ?`

	var p plan.Plan
	var description sql.NullString
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.DurationDays, &description, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Plan")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get plan", err)
	}

	p.Description = description.String
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

func (r *PlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE plans SET name = ?, price = ?, duration_days = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Price, p.DurationDays, p.Description,
		p.UpdatedAt.Format(time.RFC3339), p.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update plan", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Plan")
	}

	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete plan", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Plan")
	}

	return nil
}

func (r *PlanRepository) List(ctx context.Context) ([]*plan.Plan, error) {
	query := `SELECT id, name, price, duration_days, description, created_at FROM plans ORDER BY price ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list plans", err)
	}
	defer rows.Close()

	plans := make([]*plan.Plan, 0, 10)
	for rows.Next() {
		var p plan.Plan
		var description sql.NullString
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays, &description, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan plan", err)
		}
		p.Description = description.String
		p.CreatedAt = parseTime(createdAt)
		plans = append(plans, &p)
	}

	return plans, rows.Err()
}
