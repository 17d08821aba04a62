package storage

import (
	"fmt"
	"regexp"

	"custetl/internal/ddl"
	"custetl/internal/schema"
)

// DefaultTablePrefix is prepended to the country value when the pipeline does
// not configure its own prefix.
const DefaultTablePrefix = "Table_"

// safeCountry accepts country values that form a safe SQL identifier on
// their own: a leading letter, then letters, digits, or underscores. Country
// values come straight from the input file, so anything else is rejected
// rather than escaped; the offending rows are dropped by the loader.
var safeCountry = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// TableForCountry maps a country value to its destination table name. The
// country must already be trimmed; validation is strict by design.
func TableForCountry(prefix, country string) (string, error) {
	if prefix == "" {
		prefix = DefaultTablePrefix
	}
	if !safeCountry.MatchString(country) {
		return "", fmt.Errorf("country %q is not a safe table identifier", country)
	}
	return prefix + country, nil
}

// CustomerTable returns the definition of one per-country table: the fixed
// 12-column schema, all text except the two derived integer columns. Columns
// are nullable to mirror the store this feed historically loaded into.
func CustomerTable(table string) ddl.TableDef {
	contract := schema.Customers()
	cols := make([]ddl.ColumnDef, 0, len(contract.Fields))
	for _, f := range contract.Fields {
		typ := f.Type
		if typ == "date" {
			// Dates are stored as YYYY-MM-DD text.
			typ = "text"
		}
		cols = append(cols, ddl.ColumnDef{Name: f.Name, Type: typ, Nullable: true})
	}
	return ddl.TableDef{Name: table, Columns: cols}
}
