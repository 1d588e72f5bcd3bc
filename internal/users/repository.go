package users

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	db db.Querier
}

// NewRepository constructs a repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

var listSpec = db.ListSpec{
	Table:   "admins",
	Columns: []string{"id", "name", "email", "role", "is_active", "last_login_at", "created_at"},
	Filters: []db.FilterColumn{
		{Key: "name", Column: "name", Match: db.MatchContains},
		{Key: "email", Column: "email", Match: db.MatchContains},
		{Key: "role", Column: "role", Match: db.MatchEqual},
	},
	Sorts: map[string]string{
		"name":        "name",
		"email":       "email",
		"role":        "role",
		"lastLoginAt": "last_login_at",
		"createdAt":   "created_at",
	},
	DefaultSort:  "name",
	ActiveColumn: "is_active",
}

// ListUsers returns one page of admins and the number of matching rows.
func (r *Repository) ListUsers(ctx context.Context, state listing.FilterState) ([]User, int, error) {
	return db.List(ctx, r.db, listSpec, state, scanUser)
}

func scanUser(row pgx.CollectableRow) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsActive, &u.LastLoginAt, &u.CreatedAt)
	return u, err
}
