package branches

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/platform/db"
)

// Repository lists branches from PostgreSQL.
type Repository struct {
	db db.Querier
}

// NewRepository constructs a Repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

var listSpec = db.ListSpec{
	Table:   "branches",
	Columns: []string{"id", "code", "name", "city", "is_active", "created_at"},
	Filters: []db.FilterColumn{
		{Key: "name", Column: "name", Match: db.MatchContains},
		{Key: "code", Column: "code", Match: db.MatchContains},
		{Key: "city", Column: "city", Match: db.MatchContains},
	},
	Sorts: map[string]string{
		"code":      "code",
		"name":      "name",
		"city":      "city",
		"createdAt": "created_at",
	},
	DefaultSort:  "name",
	ActiveColumn: "is_active",
}

// List returns one page of branches and the number of matching rows.
func (r *Repository) List(ctx context.Context, state listing.FilterState) ([]Branch, int, error) {
	return db.List(ctx, r.db, listSpec, state, scanBranch)
}

func scanBranch(row pgx.CollectableRow) (Branch, error) {
	var b Branch
	err := row.Scan(&b.ID, &b.Code, &b.Name, &b.City, &b.IsActive, &b.CreatedAt)
	return b, err
}
