// Package mysql provides the MySQL storage backend.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/huandu/go-sqlbuilder"

	"custetl/internal/storage"
	"custetl/internal/storage/mysql/ddl"
)

func init() {
	storage.Register("mysql", New)
	storage.RegisterDDL("mysql", func(table string) (string, error) {
		return ddl.BuildCreateTableSQL(storage.CustomerTable(table))
	})
}

// Repo is a Repository backed by a MySQL connection pool.
type Repo struct {
	db *sql.DB
}

// New connects to the database named by cfg.DSN and verifies the connection.
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("mysql: dsn is required")
	}
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Exec(ctx context.Context, query string, args ...any) error {
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repo) UpsertBatch(ctx context.Context, ops []storage.UpsertOp) (int64, error) {
	return storage.UpsertBatchSQL(ctx, r.db, sqlbuilder.MySQL, ops)
}

func (r *Repo) Count(ctx context.Context, table string) (int64, error) {
	return storage.CountSQL(ctx, r.db, table)
}

func (r *Repo) Close() error {
	return r.db.Close()
}
