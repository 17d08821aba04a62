// Package sqlite provides the SQLite storage backend, the default for local
// runs. It uses the pure-Go modernc.org/sqlite driver, so no cgo toolchain is
// needed.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	_ "modernc.org/sqlite"

	"custetl/internal/storage"
	"custetl/internal/storage/sqlite/ddl"
)

func init() {
	storage.Register("sqlite", New)
	storage.RegisterDDL("sqlite", func(table string) (string, error) {
		return ddl.BuildCreateTableSQL(storage.CustomerTable(table))
	})
}

// Repo is a Repository backed by a SQLite database file.
type Repo struct {
	db *sql.DB
}

// New opens (and creates if absent) the SQLite database at cfg.DSN.
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("sqlite: dsn is required")
	}
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", cfg.DSN, err)
	}
	// The driver serializes access itself; a second connection would only
	// contend on the file lock.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping %s: %w", cfg.DSN, err)
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Exec(ctx context.Context, query string, args ...any) error {
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repo) UpsertBatch(ctx context.Context, ops []storage.UpsertOp) (int64, error) {
	return storage.UpsertBatchSQL(ctx, r.db, sqlbuilder.SQLite, ops)
}

func (r *Repo) Count(ctx context.Context, table string) (int64, error) {
	return storage.CountSQL(ctx, r.db, table)
}

func (r *Repo) Close() error {
	return r.db.Close()
}
