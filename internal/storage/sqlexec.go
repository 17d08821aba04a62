package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
)

// UpsertBatchSQL applies a batch of delete-then-insert operations on a
// database/sql connection inside one transaction. The flavor controls
// placeholder syntax, so the sqlite, mysql, and mssql backends share this
// implementation verbatim.
//
// The transaction is rolled back in full on the first failing statement;
// partial loads never commit.
func UpsertBatchSQL(ctx context.Context, db *sql.DB, flavor sqlbuilder.Flavor, ops []UpsertOp) (int64, error) {
	if len(ops) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	var loaded int64
	for _, op := range ops {
		delSQL, delArgs := buildDelete(flavor, op)
		if _, err := tx.ExecContext(ctx, delSQL, delArgs...); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("delete from %s: %w", op.Table, err)
		}

		insSQL, insArgs := buildInsert(flavor, op)
		if _, err := tx.ExecContext(ctx, insSQL, insArgs...); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert into %s: %w", op.Table, err)
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return loaded, nil
}

// buildDelete renders DELETE FROM <table> WHERE <key1> = ? AND <key2> = ?
// in the given flavor.
func buildDelete(flavor sqlbuilder.Flavor, op UpsertOp) (string, []any) {
	b := sqlbuilder.NewDeleteBuilder()
	b.DeleteFrom(op.Table)
	conds := make([]string, 0, len(op.KeyColumns))
	for i, col := range op.KeyColumns {
		conds = append(conds, b.Equal(col, op.KeyValues[i]))
	}
	b.Where(conds...)
	return b.BuildWithFlavor(flavor)
}

// buildInsert renders the full-row INSERT in the given flavor.
func buildInsert(flavor sqlbuilder.Flavor, op UpsertOp) (string, []any) {
	b := sqlbuilder.NewInsertBuilder()
	b.InsertInto(op.Table)
	b.Cols(op.Columns...)
	b.Values(op.Values...)
	return b.BuildWithFlavor(flavor)
}

// CountSQL returns the row count of table on a database/sql connection.
func CountSQL(ctx context.Context, db *sql.DB, table string) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
