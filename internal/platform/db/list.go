package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
)

// List builds the page and count queries for state and runs them
// concurrently. scan maps one row to T.
func List[T any](ctx context.Context, q Querier, spec ListSpec, state listing.FilterState, scan pgx.RowToFunc[T]) ([]T, int, error) {
	query, err := spec.Build(state)
	if err != nil {
		return nil, 0, err
	}

	var (
		items []T
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := q.QueryRow(gctx, query.CountSQL, query.CountArgs...).Scan(&total); err != nil {
			return fmt.Errorf("platform/db: count %s: %w", spec.Table, err)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := q.Query(gctx, query.SQL, query.Args...)
		if err != nil {
			return fmt.Errorf("platform/db: list %s: %w", spec.Table, err)
		}
		collected, err := pgx.CollectRows(rows, scan)
		if err != nil {
			return fmt.Errorf("platform/db: scan %s: %w", spec.Table, err)
		}
		items = collected
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}
