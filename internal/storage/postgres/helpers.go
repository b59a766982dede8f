package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"internhub-api/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

// NewStore wires every postgres repository into a storage.Store.
func NewStore(pool *pgxpool.Pool) *storage.Store {
	return &storage.Store{
		Partners:     NewPartnerRepo(pool),
		Jobs:         NewJobRepo(pool),
		Applications: NewApplicationRepo(pool),
		Candidates:   NewCandidateRepo(pool),
		Shortlists:   NewShortlistRepo(pool),
		ResumeAccess: NewResumeAccessRepo(pool),
		Roles:        NewRoleRepo(pool),
	}
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver errors onto the storage sentinels.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", what, storage.ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: referenced row missing: %w", what, storage.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

// staleOrMissing explains a conditional UPDATE that matched no row: either the
// row is gone or its state moved on. table is always a package constant.
func staleOrMissing(ctx context.Context, db Querier, table string, id any, what string) error {
	var exists bool
	err := db.QueryRow(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), id).Scan(&exists)
	if err != nil {
		return translateError(err, what)
	}
	if !exists {
		return storage.ErrNotFound
	}
	return fmt.Errorf("%s: %w", what, storage.ErrStaleState)
}

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conditions []string
	args       []any
}

func (w *whereBuilder) add(column string, value any) {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

// build appends the WHERE clause and the default ordering to baseQuery.
func (w *whereBuilder) build(baseQuery, orderBy string) string {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(baseQuery)
	if len(w.conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(w.conditions, " AND "))
	}
	if orderBy != "" {
		queryBuilder.WriteString(" ORDER BY ")
		queryBuilder.WriteString(orderBy)
	}
	return queryBuilder.String()
}

// nonNil keeps NOT NULL text[] columns from receiving NULL.
func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
