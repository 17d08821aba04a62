package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"custetl/internal/schema"
	"custetl/internal/storage"
	"custetl/internal/storage/postgres/ddl"
)

func sampleOp() storage.UpsertOp {
	vals := make([]any, len(schema.StorageColumns))
	for i := range vals {
		vals[i] = "x"
	}
	return storage.UpsertOp{
		Table:      "Table_USA",
		KeyColumns: schema.KeyColumns,
		KeyValues:  []any{"123457", "1987-03-06"},
		Columns:    schema.StorageColumns,
		Values:     vals,
	}
}

// TestDMLQuotesIdentifiersLikeDDL pins the quoting contract: the tables are
// created with quoted mixed-case names, so the delete and insert must quote
// the same way or the server resolves them against folded lowercase names.
func TestDMLQuotesIdentifiersLikeDDL(t *testing.T) {
	t.Parallel()

	op := sampleOp()

	createSQL, err := ddl.BuildCreateTableSQL(storage.CustomerTable(op.Table))
	require.NoError(t, err)
	require.Contains(t, createSQL, `CREATE TABLE IF NOT EXISTS "Table_USA"`)

	delSQL, delArgs := buildDelete(op)
	require.Equal(t, `DELETE FROM "Table_USA" WHERE "Customer_Id" = $1 AND "DOB" = $2`, delSQL)
	require.Equal(t, []any{"123457", "1987-03-06"}, delArgs)

	insSQL, insArgs := buildInsert(op)
	require.True(t, strings.HasPrefix(insSQL, `INSERT INTO "Table_USA" `), insSQL)
	require.Len(t, insArgs, len(schema.StorageColumns))

	// Every identifier the DML touches must appear in the DDL quoted the
	// same way.
	for _, col := range op.Columns {
		quoted := ddl.QuoteIdent(col)
		require.Contains(t, insSQL, quoted)
		require.Contains(t, createSQL, quoted)
	}
	require.NotContains(t, delSQL, " Customer_Id ", "unquoted key column would fold to lowercase")
}

func TestNewRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), storage.Config{Kind: "postgres"})
	require.Error(t, err)
}
