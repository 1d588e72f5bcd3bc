package vans

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/platform/db"
)

// Repository lists vans from PostgreSQL.
type Repository struct {
	db db.Querier
}

// NewRepository constructs a Repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

var listSpec = db.ListSpec{
	Table: "vans v JOIN branches b ON b.id = v.branch_id",
	Columns: []string{
		"v.id", "v.code", "v.plate_number", "v.driver_name", "v.capacity",
		"v.branch_id", "b.name", "v.is_active",
	},
	Filters: []db.FilterColumn{
		{Key: "code", Column: "v.code", Match: db.MatchContains},
		{Key: "driverName", Column: "v.driver_name", Match: db.MatchContains},
		{Key: "branchId", Column: "v.branch_id", Match: db.MatchEqualInt},
	},
	Sorts: map[string]string{
		"code":        "v.code",
		"plateNumber": "v.plate_number",
		"driverName":  "v.driver_name",
		"capacity":    "v.capacity",
		"branchName":  "b.name",
	},
	DefaultSort:  "v.code",
	ActiveColumn: "v.is_active",
	KeyColumn:    "v.id",
}

// List returns one page of vans and the number of matching rows.
func (r *Repository) List(ctx context.Context, state listing.FilterState) ([]Van, int, error) {
	return db.List(ctx, r.db, listSpec, state, scanVan)
}

// BranchOptions lists active branches by name.
func (r *Repository) BranchOptions(ctx context.Context) ([]BranchOption, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM branches WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("vans: branch options: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (BranchOption, error) {
		var o BranchOption
		err := row.Scan(&o.ID, &o.Name)
		return o, err
	})
}

func scanVan(row pgx.CollectableRow) (Van, error) {
	var v Van
	err := row.Scan(&v.ID, &v.Code, &v.PlateNumber, &v.DriverName, &v.Capacity, &v.BranchID, &v.BranchName, &v.IsActive)
	return v, err
}
