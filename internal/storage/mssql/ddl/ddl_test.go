package ddl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"custetl/internal/ddl"
)

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	sql, err := BuildCreateTableSQL(ddl.TableDef{
		Name: "Table_USA",
		Columns: []ddl.ColumnDef{
			{Name: "Customer_Id", Type: "text", Nullable: true},
			{Name: "Age", Type: "int", Nullable: true},
			{Name: "DOB", Type: "date", Nullable: true},
		},
	})
	require.NoError(t, err)

	// T-SQL has no IF NOT EXISTS; the guard is an OBJECT_ID check.
	require.True(t, strings.HasPrefix(sql, "IF OBJECT_ID(N'[Table_USA]', N'U') IS NULL"), sql)
	require.Contains(t, sql, "CREATE TABLE [Table_USA]")
	require.Contains(t, sql, "[Customer_Id] NVARCHAR(255)")
	require.Contains(t, sql, "[Age] INT")
	require.Contains(t, sql, "[DOB] VARCHAR(10)")
}

func TestBuildCreateTableSQLRejectsEmpty(t *testing.T) {
	t.Parallel()

	_, err := BuildCreateTableSQL(ddl.TableDef{})
	require.Error(t, err)

	_, err = BuildCreateTableSQL(ddl.TableDef{Name: "Table_USA"})
	require.Error(t, err)
}
