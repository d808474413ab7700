package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/admin"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) admin.Repository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `
		INSERT INTO admins (email, password_hash, full_name, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		a.Email, a.PasswordHash, a.FullName, a.Role, a.IsActive,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create admin", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get admin ID", err)
	}
	a.ID = id

	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*admin.Admin, error) {
	return r.getOne(ctx, "SELECT id, email, password_hash, full_name, role, is_active, last_login_at, created_at FROM admins WHERE id = ?", id)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	return r.getOne(ctx, "SELECT id, email, password_hash, full_name, role, is_active, last_login_at, created_at FROM admins WHERE email = ?", email)
}

func (r *AdminRepository) getOne(ctx context.Context, query string, arg interface{}) (*admin.Admin, error) {
	var a admin.Admin
	var lastLogin sql.NullString
	var createdAt string

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Role, &a.IsActive, &lastLogin, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Admin")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get admin", err)
	}

	a.CreatedAt = parseTime(createdAt)
	if lastLogin.Valid {
		t := parseTime(lastLogin.String)
		a.LastLoginAt = &t
	}
	return &a, nil
}

func (r *AdminRepository) Update(ctx context.Context, a *admin.Admin) error {
	a.UpdatedAt = time.Now()

	query := `
		UPDATE admins SET email = ?, password_hash = ?, full_name = ?, role = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		a.Email, a.PasswordHash, a.FullName, a.Role, a.IsActive,
		a.UpdatedAt.Format(time.RFC3339), a.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update admin", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Admin")
	}

	return nil
}

func (r *AdminRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE admins SET last_login_at = ? WHERE id = ?",
		time.Now().Format(time.RFC3339), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to record login", err)
	}
	return nil
}
