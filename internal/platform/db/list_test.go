package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
)

type fakeRows struct {
	data [][]any
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(r.data[r.pos-1], dest)
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d targets", len(values), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = values[i].(int64)
		case *int:
			*p = values[i].(int)
		case *string:
			*p = values[i].(string)
		default:
			return fmt.Errorf("scan: unsupported target %T", d)
		}
	}
	return nil
}

// fakeQuerier serves the count through QueryRow and the page through Query.
type fakeQuerier struct {
	mu       sync.Mutex
	rows     [][]any
	total    int
	countErr error
	sql      []string
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sql = append(q.sql, sql)
	return &fakeRows{data: q.rows}, nil
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sql = append(q.sql, sql)
	return fakeRow{values: []any{q.total}, err: q.countErr}
}

type vanRow struct {
	ID   int64
	Code string
}

func scanVan(row pgx.CollectableRow) (vanRow, error) {
	var v vanRow
	var driver string
	err := row.Scan(&v.ID, &v.Code, &driver)
	return v, err
}

func TestListRunsPageAndCount(t *testing.T) {
	q := &fakeQuerier{
		rows:  [][]any{{int64(1), "V1", "Ali"}, {int64(2), "V2", "Sara"}},
		total: 12,
	}
	items, total, err := List(context.Background(), q, vanSpec, listing.ParseQuery("page=1"), scanVan)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Equal(t, []vanRow{{ID: 1, Code: "V1"}, {ID: 2, Code: "V2"}}, items)
	assert.Len(t, q.sql, 2)
}

func TestListEmptyPageIsNotNil(t *testing.T) {
	items, total, err := List(context.Background(), &fakeQuerier{}, vanSpec, listing.ParseQuery(""), scanVan)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestListPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := List(context.Background(), &fakeQuerier{countErr: boom}, vanSpec, listing.ParseQuery(""), scanVan)
	assert.ErrorIs(t, err, boom)

	q := &fakeQuerier{}
	_, _, err = List(context.Background(), q, vanSpec, listing.ParseQuery("branchId=x"), scanVan)
	assert.Error(t, err)
	assert.Empty(t, q.sql, "invalid filters never reach the database")
}
