package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"custetl/internal/schema"
	"custetl/internal/storage"
)

func openTestRepo(t *testing.T) storage.Repository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "custetl_test.db")
	repo, err := New(context.Background(), storage.Config{Kind: "sqlite", DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testOp(table, id, dob, name string) storage.UpsertOp {
	vals := make([]any, len(schema.StorageColumns))
	for i, col := range schema.StorageColumns {
		switch col {
		case schema.ColCustomerID:
			vals[i] = id
		case schema.ColDOB:
			vals[i] = dob
		case schema.ColCustomerName:
			vals[i] = name
		case schema.ColAge, schema.ColDaysSinceLastConsulted:
			vals[i] = 0
		default:
			vals[i] = "x"
		}
	}
	return storage.UpsertOp{
		Table:      table,
		KeyColumns: schema.KeyColumns,
		KeyValues:  []any{id, dob},
		Columns:    schema.StorageColumns,
		Values:     vals,
	}
}

func TestEnsureTableIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, storage.EnsureTable(ctx, "sqlite", repo, "Table_USA"))
	require.NoError(t, storage.EnsureTable(ctx, "sqlite", repo, "Table_USA"))

	n, err := repo.Count(ctx, "Table_USA")
	require.NoError(t, err)
	require.Zero(t, n)
}

// TestUpsertBatchReplacesByKey loads the same (Customer_Id, DOB) twice and
// checks the second run replaces rather than accumulates.
func TestUpsertBatchReplacesByKey(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()
	require.NoError(t, storage.EnsureTable(ctx, "sqlite", repo, "Table_USA"))

	loaded, err := repo.UpsertBatch(ctx, []storage.UpsertOp{
		testOp("Table_USA", "123457", "1987-03-06", "Alex"),
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, loaded)

	loaded, err = repo.UpsertBatch(ctx, []storage.UpsertOp{
		testOp("Table_USA", "123457", "1987-03-06", "Alexander"),
		testOp("Table_USA", "123458", "1987-03-06", "John"),
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, loaded)

	n, err := repo.Count(ctx, "Table_USA")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

// TestUpsertBatchRollsBack verifies nothing commits when one statement in the
// batch fails.
func TestUpsertBatchRollsBack(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()
	require.NoError(t, storage.EnsureTable(ctx, "sqlite", repo, "Table_USA"))

	_, err := repo.UpsertBatch(ctx, []storage.UpsertOp{
		testOp("Table_USA", "123457", "1987-03-06", "Alex"),
		testOp("Table_Missing", "123458", "1987-03-06", "John"),
	})
	require.Error(t, err)

	n, err := repo.Count(ctx, "Table_USA")
	require.NoError(t, err)
	require.Zero(t, n, "failed batch must not leave partial rows")
}

func TestNewRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), storage.Config{Kind: "sqlite"})
	require.Error(t, err)
}
