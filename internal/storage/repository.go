// Package storage contains the storage-agnostic contracts of the load stage:
// the Repository interface, the backend factory, the DDL bootstrapper
// registry, and the country-to-table mapping. Concrete backends live in
// subpackages and register themselves at init time; callers select one by
// storage kind and never import backend packages directly.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// UpsertOp is one delete-then-insert against a single table: delete any row
// matching KeyColumns/KeyValues, then insert Values aligned with Columns.
type UpsertOp struct {
	Table      string
	KeyColumns []string
	KeyValues  []any
	Columns    []string
	Values     []any
}

// Repository is the minimal storage contract used by the loader.
//
// UpsertBatch must apply every operation inside a single transaction: either
// all deletes and inserts commit together or none do. Exec runs arbitrary SQL
// (typically DDL) outside that transaction. Count exists for post-load
// verification and verbose reporting.
type Repository interface {
	Exec(ctx context.Context, sql string, args ...any) error
	UpsertBatch(ctx context.Context, ops []UpsertOp) (int64, error)
	Count(ctx context.Context, table string) (int64, error)
	Close() error
}

// Config carries everything a backend needs to open a Repository.
type Config struct {
	// Kind selects the backend ("sqlite", "postgres", "mysql", "mssql").
	Kind string

	// DSN is the backend-specific connection string.
	DSN string
}

// Factory constructs a Repository for one storage kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
	ddlFns    = map[string]DDLBuilder{}
)

// Register installs (or replaces) the factory for a storage kind. It is
// called from backend packages' init functions.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind. The kind must have been registered,
// typically by blank-importing internal/storage/all.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no storage backend registered for kind %q", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// DDLBuilder renders the idempotent create statement for one per-country
// customer table in a backend's dialect.
type DDLBuilder func(table string) (string, error)

// RegisterDDL installs the DDL builder for a storage kind.
func RegisterDDL(kind string, fn DDLBuilder) {
	regMu.Lock()
	defer regMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable creates the named table if it is absent. Existing tables are
// left untouched and never dropped.
func EnsureTable(ctx context.Context, kind string, repo Repository, table string) error {
	regMu.RLock()
	fn, ok := ddlFns[kind]
	regMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL builder registered for kind %q", kind)
	}
	sql, err := fn(table)
	if err != nil {
		return fmt.Errorf("build DDL for %s: %w", table, err)
	}
	if err := repo.Exec(ctx, sql); err != nil {
		return fmt.Errorf("ensure table %s: %w", table, err)
	}
	return nil
}
