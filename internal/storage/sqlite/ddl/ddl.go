// Package ddl renders table definitions as SQLite DDL.
package ddl

import (
	"fmt"
	"strings"

	"custetl/internal/ddl"
)

// MapType maps a logical column type to its SQLite storage class.
func MapType(logical string) string {
	switch strings.ToLower(logical) {
	case "int":
		return "INTEGER"
	default:
		// "text" and "date"; dates are stored as YYYY-MM-DD text.
		return "TEXT"
	}
}

func quoteIdent(s string) string {
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
		line := fmt.Sprintf("  %s %s", quoteIdent(c.Name), MapType(c.Type))
		if !c.Nullable {
			line += " NOT NULL"
		}
		cols = append(cols, line)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		quoteIdent(def.Name), strings.Join(cols, ",\n")), nil
}
