// Package ddl renders table definitions as PostgreSQL DDL.
package ddl

import (
	"fmt"
	"strings"

	"custetl/internal/ddl"
)

// MapType maps a logical column type to a PostgreSQL type.
func MapType(logical string) string {
	switch strings.ToLower(logical) {
	case "int":
		return "INTEGER"
	case "date":
		// Stored as YYYY-MM-DD text; comparison stays lexicographic.
		return "TEXT"
	default:
		return "TEXT"
	}
}

// QuoteIdent double-quotes an identifier. PostgreSQL folds unquoted
// identifiers to lowercase, so every statement touching the mixed-case
// customer tables must quote consistently with the DDL here; the DML side
// uses this same function.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// BuildCreateTableSQL renders an idempotent CREATE TABLE IF NOT EXISTS for
// the definition.
func BuildCreateTableSQL(def ddl.TableDef) (string, error) {
	if def.Name == "" {
		return "", fmt.Errorf("table name is empty")
	}
	if len(def.Columns) == 0 {
		return "", fmt.Errorf("table %s has no columns", def.Name)
	}

	cols := make([]string, 0, len(def.Columns))
	for _, c := range def.Columns {
		line := fmt.Sprintf("  %s %s", QuoteIdent(c.Name), MapType(c.Type))
		if !c.Nullable {
			line += " NOT NULL"
		}
		cols = append(cols, line)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		QuoteIdent(def.Name), strings.Join(cols, ",\n")), nil
}
