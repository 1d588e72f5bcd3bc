package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
)

// Querier is the subset of pgxpool.Pool used by listing repositories.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Match selects how a filter value constrains its column.
type Match int

const (
	// MatchContains is a case-insensitive substring match.
	MatchContains Match = iota
	// MatchEqual compares the column with the raw string.
	MatchEqual
	// MatchEqualInt parses the value as an integer id.
	MatchEqualInt
)

// FilterColumn binds a query key to a column.
type FilterColumn struct {
	Key    string
	Column string
	Match  Match
}

// ListSpec describes how a FilterState maps onto one table.
type ListSpec struct {
	Table   string
	Columns []string
	Filters []FilterColumn
	// Sorts maps sortBy values to columns. Unknown values use DefaultSort.
	Sorts       map[string]string
	DefaultSort string
	// ActiveColumn, when set, hides inactive rows unless includeInActive is true.
	ActiveColumn string
	// KeyColumn breaks sort ties. Defaults to "id"; joins need it qualified.
	KeyColumn string
}

// ListQuery is a built page query and its matching count query.
type ListQuery struct {
	SQL       string
	Args      []any
	CountSQL  string
	CountArgs []any
}

// Build turns state into SQL. Blank filter values impose no constraint.
func (s ListSpec) Build(state listing.FilterState) (ListQuery, error) {
	var where []string
	var args []any
	for _, f := range s.Filters {
		raw, ok := state.Extra[f.Key]
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			continue
		}
		switch f.Match {
		case MatchContains:
			args = append(args, "%"+escapeLike(raw)+"%")
			where = append(where, f.Column+" ILIKE $"+strconv.Itoa(len(args)))
		case MatchEqual:
			args = append(args, raw)
			where = append(where, f.Column+" = $"+strconv.Itoa(len(args)))
		case MatchEqualInt:
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return ListQuery{}, fmt.Errorf("%w: %s must be a number", shared.ErrInvalidFilter, f.Key)
			}
			args = append(args, id)
			where = append(where, f.Column+" = $"+strconv.Itoa(len(args)))
		}
	}
	if s.ActiveColumn != "" && !state.IncludesInactive() {
		where = append(where, s.ActiveColumn+" = TRUE")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	countArgs := append([]any(nil), args...)
	countSQL := "SELECT COUNT(*) FROM " + s.Table + clause

	query := "SELECT " + strings.Join(s.Columns, ", ") + " FROM " + s.Table + clause +
		" ORDER BY " + s.orderBy(state)
	args = append(args, state.Limit())
	query += " LIMIT $" + strconv.Itoa(len(args))
	args = append(args, state.Offset())
	query += " OFFSET $" + strconv.Itoa(len(args))

	return ListQuery{SQL: query, Args: args, CountSQL: countSQL, CountArgs: countArgs}, nil
}

func (s ListSpec) orderBy(state listing.FilterState) string {
	column, ok := s.Sorts[state.SortBy]
	if !ok {
		column = s.DefaultSort
	}
	dir := "ASC"
	if state.SortOrder == listing.SortDesc {
		dir = "DESC"
	}
	key := s.KeyColumn
	if key == "" {
		key = "id"
	}
	if column == key {
		return key + " " + dir
	}
	return column + " " + dir + ", " + key + " ASC"
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
