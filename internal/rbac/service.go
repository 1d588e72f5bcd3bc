package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
)

// RowQuerier is satisfied by *pgxpool.Pool.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service resolves administrators and their permissions.
type Service struct {
	db RowQuerier
}

// NewService constructs a Service backed by db.
func NewService(db RowQuerier) *Service {
	return &Service{db: db}
}

// Admin loads an active administrator by id. Missing or deactivated accounts
// return shared.ErrUnauthenticated.
func (s *Service) Admin(ctx context.Context, id int64) (shared.Admin, error) {
	var a shared.Admin
	err := s.db.QueryRow(ctx, `SELECT id, email, role FROM admins WHERE id = $1 AND is_active`, id).Scan(&a.ID, &a.Email, &a.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.Admin{}, shared.ErrUnauthenticated
		}
		return shared.Admin{}, fmt.Errorf("rbac: load admin: %w", err)
	}
	return a, nil
}

// EffectivePermissions returns the permissions of the admin with id.
func (s *Service) EffectivePermissions(ctx context.Context, id int64) ([]string, error) {
	admin, err := s.Admin(ctx, id)
	if err != nil {
		return nil, err
	}
	return PermissionsFor(admin.Role), nil
}
