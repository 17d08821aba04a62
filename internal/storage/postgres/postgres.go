// Package postgres provides the PostgreSQL storage backend on a pgx
// connection pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"custetl/internal/storage"
	"custetl/internal/storage/postgres/ddl"
)

func init() {
	storage.Register("postgres", New)
	storage.RegisterDDL("postgres", func(table string) (string, error) {
		return ddl.BuildCreateTableSQL(storage.CustomerTable(table))
	})
}

// Repo is a Repository backed by a pgx pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New connects to the database named by cfg.DSN and verifies the connection.
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres: dsn is required")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repo{pool: pool}, nil
}

func (r *Repo) Exec(ctx context.Context, query string, args ...any) error {
	_, err := r.pool.Exec(ctx, query, args...)
	return err
}

// UpsertBatch runs every delete-then-insert pair in one pgx transaction.
func (r *Repo) UpsertBatch(ctx context.Context, ops []storage.UpsertOp) (int64, error) {
	if len(ops) == 0 {
		return 0, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var loaded int64
	for _, op := range ops {
		delSQL, delArgs := buildDelete(op)
		if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
			return 0, fmt.Errorf("postgres: delete from %s: %w", op.Table, err)
		}

		insSQL, insArgs := buildInsert(op)
		if _, err := tx.Exec(ctx, insSQL, insArgs...); err != nil {
			return 0, fmt.Errorf("postgres: insert into %s: %w", op.Table, err)
		}
		loaded++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return loaded, nil
}

// buildDelete and buildInsert quote every identifier with the same QuoteIdent
// the DDL builder uses. Unquoted identifiers would fold to lowercase and miss
// the mixed-case tables the DDL creates.

func buildDelete(op storage.UpsertOp) (string, []any) {
	b := sqlbuilder.NewDeleteBuilder()
	b.DeleteFrom(ddl.QuoteIdent(op.Table))
	conds := make([]string, 0, len(op.KeyColumns))
	for i, col := range op.KeyColumns {
		conds = append(conds, b.Equal(ddl.QuoteIdent(col), op.KeyValues[i]))
	}
	b.Where(conds...)
	return b.BuildWithFlavor(sqlbuilder.PostgreSQL)
}

func buildInsert(op storage.UpsertOp) (string, []any) {
	b := sqlbuilder.NewInsertBuilder()
	b.InsertInto(ddl.QuoteIdent(op.Table))
	cols := make([]string, 0, len(op.Columns))
	for _, col := range op.Columns {
		cols = append(cols, ddl.QuoteIdent(col))
	}
	b.Cols(cols...)
	b.Values(op.Values...)
	return b.BuildWithFlavor(sqlbuilder.PostgreSQL)
}

func (r *Repo) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+ddl.QuoteIdent(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count %s: %w", table, err)
	}
	return n, nil
}

func (r *Repo) Close() error {
	r.pool.Close()
	return nil
}
