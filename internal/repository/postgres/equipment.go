package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/equipment"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
)

type EquipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) equipment.Repository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *equipment.Equipment) (int64, error) {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Status == "" {
		e.Status = equipment.StatusAvailable
	}

	var purchasedAt interface{}
	if e.PurchasedAt != nil {
		purchasedAt = e.PurchasedAt.Format(time.RFC3339)
	}

	query := `
		INSERT INTO equipment (name, category, status, purchased_at, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		e.Name, e.Category, e.Status, purchasedAt, e.Notes,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create equipment", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get equipment ID", err)
	}

	return id, nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*equipment.Equipment, error) {
	query := `
		SELECT id, name, category, status, purchased_at, notes, created_at
		FROM equipment WHERE id = ?
	`

	var e equipment.Equipment
	var category, purchasedAt, notes sql.NullString
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &category, &e.Status, &purchasedAt, &notes, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Equipment")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get equipment", err)
	}

	e.Category = category.String
	e.Notes = notes.String
	if purchasedAt.Valid {
		t := parseTime(purchasedAt.String)
		e.PurchasedAt = &t
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, e *equipment.Equipment) error {
	e.UpdatedAt = time.Now()

	var purchasedAt interface{}
	if e.PurchasedAt != nil {
		purchasedAt = e.PurchasedAt.Format(time.RFC3339)
	}

	query := `
		UPDATE equipment SET name = ?, category = ?, status = ?, purchased_at = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		e.Name, e.Category, e.Status, purchasedAt, e.Notes,
		e.UpdatedAt.Format(time.RFC3339), e.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update equipment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Equipment")
	}

	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM equipment WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete equipment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Equipment")
	}

	return nil
}

func (r *EquipmentRepository) ListWithPagination(ctx context.Context, filter equipment.Filter, limit, offset int) ([]*equipment.Equipment, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM equipment WHERE %s", whereClause)
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count equipment", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, category, status, purchased_at, notes, created_at
		FROM equipment WHERE %s ORDER BY id DESC LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list equipment", err)
	}
	defer rows.Close()

	items := make([]*equipment.Equipment, 0, limit)
	for rows.Next() {
		var e equipment.Equipment
		var category, purchasedAt, notes sql.NullString
		var createdAt string
		err := rows.Scan(&e.ID, &e.Name, &category, &e.Status, &purchasedAt, &notes, &createdAt)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan equipment", err)
		}
		e.Category = category.String
		e.Notes = notes.String
		if purchasedAt.Valid {
			t := parseTime(purchasedAt.String)
			e.PurchasedAt = &t
		}
		e.CreatedAt = parseTime(createdAt)
		items = append(items, &e)
	}

	return items, total, rows.Err()
}

func (r *EquipmentRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM equipment GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count equipment by status", err)
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
