package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/platform/db"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
)

// Repository defines persistence operations for auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	CreateSession(ctx context.Context, s LoginSession) error
	DeleteSession(ctx context.Context, id string) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const findAdminByEmail = `SELECT id, email, name, password_hash, role, is_active, last_login_at, created_at
FROM admins WHERE lower(email) = lower($1)`

// FindByEmail fetches an admin by email, ignoring case.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	err := r.pool.QueryRow(ctx, findAdminByEmail, strings.TrimSpace(email)).Scan(
		&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Role, &a.IsActive, &a.LastLoginAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("auth: find admin: %w", err)
	}
	return &a, nil
}

// CreateSession stores the login session and stamps the admin's last login.
func (r *PGRepository) CreateSession(ctx context.Context, s LoginSession) error {
	now := time.Now().UTC()
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO admin_sessions (id, admin_id, created_at, expires_at, ip, user_agent) VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))`,
			s.ID, s.AdminID, now, s.ExpiresAt.UTC(), s.IP, s.UserAgent,
		); err != nil {
			return fmt.Errorf("auth: insert session: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE admins SET last_login_at = $2 WHERE id = $1`, s.AdminID, now); err != nil {
			return fmt.Errorf("auth: stamp login: %w", err)
		}
		return nil
	})
}

// DeleteSession removes a session record from the database.
func (r *PGRepository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("auth: delete session: %w", err)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
