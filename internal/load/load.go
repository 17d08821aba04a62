// Package load writes transformed customers into per-country tables.
package load

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"custetl/internal/schema"
	"custetl/internal/storage"
)

// Loader groups customers by destination table, creates any missing tables,
// and applies the whole batch as one delete-then-insert transaction.
type Loader struct {
	repo        storage.Repository
	kind        string
	tablePrefix string
	log         logrus.FieldLogger
}

// NewLoader wires a Loader to an open repository. kind selects the DDL
// dialect and must match the repository's backend.
func NewLoader(repo storage.Repository, kind, tablePrefix string, log logrus.FieldLogger) *Loader {
	return &Loader{repo: repo, kind: kind, tablePrefix: tablePrefix, log: log}
}

// Result reports what one Load call did.
type Result struct {
	// Loaded is the number of rows written.
	Loaded int64

	// Dropped counts rows rejected because their country cannot form a
	// safe table name.
	Dropped int

	// Tables lists every destination table touched, sorted.
	Tables []string
}

// Load writes customers to their per-country tables. Rows whose country is
// not a safe identifier are dropped and counted; everything else is applied
// in a single transaction, so reloading the same batch is idempotent.
func (l *Loader) Load(ctx context.Context, customers []schema.Customer) (Result, error) {
	var res Result
	if len(customers) == 0 {
		return res, nil
	}

	byTable := map[string][]schema.Customer{}
	for _, c := range customers {
		table, err := storage.TableForCountry(l.tablePrefix, c.Country)
		if err != nil {
			res.Dropped++
			l.log.WithFields(logrus.Fields{
				"customer_id": c.ID,
				"country":     c.Country,
			}).Warn("dropping row: unsafe country value")
			continue
		}
		byTable[table] = append(byTable[table], c)
	}

	tables := make([]string, 0, len(byTable))
	for table := range byTable {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	ops := make([]storage.UpsertOp, 0, len(customers))
	for _, table := range tables {
		if err := storage.EnsureTable(ctx, l.kind, l.repo, table); err != nil {
			return res, fmt.Errorf("load: %w", err)
		}
		for _, c := range byTable[table] {
			ops = append(ops, storage.UpsertOp{
				Table:      table,
				KeyColumns: schema.KeyColumns,
				KeyValues:  c.KeyValues(),
				Columns:    schema.StorageColumns,
				Values:     c.Values(),
			})
		}
	}

	loaded, err := l.repo.UpsertBatch(ctx, ops)
	if err != nil {
		return res, fmt.Errorf("load: %w", err)
	}
	res.Loaded = loaded
	res.Tables = tables
	return res, nil
}

// TableCounts returns the current row count of each table, for post-load
// verification.
func (l *Loader) TableCounts(ctx context.Context, tables []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(tables))
	for _, table := range tables {
		n, err := l.repo.Count(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
