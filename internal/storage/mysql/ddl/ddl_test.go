package ddl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"custetl/internal/ddl"
)

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	sql, err := BuildCreateTableSQL(ddl.TableDef{
		Name: "Table_USA",
		Columns: []ddl.ColumnDef{
			{Name: "Customer_Id", Type: "text", Nullable: false},
			{Name: "Age", Type: "int", Nullable: true},
			{Name: "DOB", Type: "date", Nullable: true},
		},
	})
	require.NoError(t, err)
	require.Contains(t, sql, "CREATE TABLE IF NOT EXISTS `Table_USA`")
	require.Contains(t, sql, "`Customer_Id` VARCHAR(255) NOT NULL")
	require.Contains(t, sql, "`Age` INT")
	require.Contains(t, sql, "`DOB` VARCHAR(10)")
}

func TestBuildCreateTableSQLRejectsEmpty(t *testing.T) {
	t.Parallel()

	_, err := BuildCreateTableSQL(ddl.TableDef{})
	require.Error(t, err)

	_, err = BuildCreateTableSQL(ddl.TableDef{Name: "Table_USA"})
	require.Error(t, err)
}
