package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
)

type MarkerRepository struct {
	db *sql.DB
}

func NewMarkerRepository(db *sql.DB) feed.MarkerRepository {
	return &MarkerRepository{db: db}
}

func (r *MarkerRepository) ReadIDs(ctx context.Context, adminID int64) (map[string]bool, error) {
	// Exact key match only. The lookup deliberately avoids any pattern
	// matching: a marker for "sales" must not suppress "sales_decline".
	query := `SELECT alert_id FROM read_markers WHERE admin_id = ? AND is_read = ?`

	rows, err := r.db.QueryContext(ctx, query, adminID, true)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load read-markers", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.DatabaseError("Failed to scan read-marker", err)
		}
		ids[id] = true
	}

	return ids, rows.Err()
}

func (r *MarkerRepository) Upsert(ctx context.Context, m *feed.ReadMarker) error {
	now := time.Now()

	query := `
		INSERT INTO read_markers (admin_id, alert_id, category, is_read, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(admin_id, alert_id) DO UPDATE SET
			category = excluded.category,
			is_read = excluded.is_read,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		m.AdminID, m.AlertID, m.Category, m.IsRead,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to upsert read-marker", err)
	}

	return nil
}

func (r *MarkerRepository) UpsertAll(ctx context.Context, adminID int64, alertIDs []string) error {
	if len(alertIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := time.Now().Format(time.RFC3339)
	query := `
		INSERT INTO read_markers (admin_id, alert_id, is_read, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(admin_id, alert_id) DO UPDATE SET
			is_read = excluded.is_read,
			updated_at = excluded.updated_at
	`

	for _, alertID := range alertIDs {
		if _, err := tx.ExecContext(ctx, query, adminID, alertID, true, now, now); err != nil {
			return errors.DatabaseError("Failed to upsert read-marker", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit read-markers", err)
	}

	return nil
}

func (r *MarkerRepository) DeleteAll(ctx context.Context, adminID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM read_markers WHERE admin_id = ?", adminID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to clear read-markers", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows, nil
}

func (r *MarkerRepository) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM read_markers WHERE updated_at < ?",
		olderThan.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to prune read-markers", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows, nil
}
