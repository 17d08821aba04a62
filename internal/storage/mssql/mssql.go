// Package mssql provides the SQL Server storage backend.
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	_ "github.com/microsoft/go-mssqldb"

	"custetl/internal/storage"
	"custetl/internal/storage/mssql/ddl"
)

func init() {
	storage.Register("mssql", New)
	storage.RegisterDDL("mssql", func(table string) (string, error) {
		return ddl.BuildCreateTableSQL(storage.CustomerTable(table))
	})
}

// Repo is a Repository backed by a SQL Server connection pool.
type Repo struct {
	db *sql.DB
}

// New connects to the database named by cfg.DSN and verifies the connection.
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("mssql: dsn is required")
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mssql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mssql: ping: %w", err)
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Exec(ctx context.Context, query string, args ...any) error {
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repo) UpsertBatch(ctx context.Context, ops []storage.UpsertOp) (int64, error) {
	return storage.UpsertBatchSQL(ctx, r.db, sqlbuilder.SQLServer, ops)
}

func (r *Repo) Count(ctx context.Context, table string) (int64, error) {
	return storage.CountSQL(ctx, r.db, table)
}

func (r *Repo) Close() error {
	return r.db.Close()
}
