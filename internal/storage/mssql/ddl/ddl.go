// Package ddl renders table definitions as SQL Server DDL. T-SQL has no
// CREATE TABLE IF NOT EXISTS, so the statement is wrapped in an OBJECT_ID
// existence guard.
package ddl

import (
	"fmt"
	"strings"

	"custetl/internal/ddl"
)

// MapType maps a logical column type to a SQL Server type.
func MapType(logical string) string {
	switch strings.ToLower(logical) {
	case "int":
		return "INT"
	case "date":
		// Stored as YYYY-MM-DD text.
		return "VARCHAR(10)"
	default:
		return "NVARCHAR(255)"
	}
}

func quoteIdent(s string) string {
	return "[" + strings.ReplaceAll(s, "]", "]]") + "]"
}

// BuildCreateTableSQL renders the guarded create statement for the
// definition.
func BuildCreateTableSQL(def ddl.TableDef) (string, error) {
	if def.Name == "" {
		return "", fmt.Errorf("table name is empty")
	}
	if len(def.Columns) == 0 {
		return "", fmt.Errorf("table %s has no columns", def.Name)
	}

	cols := make([]string, 0, len(def.Columns))
	for _, c := range def.Columns {
		line := fmt.Sprintf("    %s %s", quoteIdent(c.Name), MapType(c.Type))
		if !c.Nullable {
			line += " NOT NULL"
		}
		cols = append(cols, line)
	}
	q := quoteIdent(def.Name)
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n  CREATE TABLE %s (\n%s\n  );\nEND;",
		q, q, strings.Join(cols, ",\n")), nil
}
