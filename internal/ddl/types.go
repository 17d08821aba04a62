// Package ddl defines a small, backend-agnostic model for table definitions.
// Backend packages (internal/storage/<kind>/ddl) render this model into their
// own dialect: quoting, IF NOT EXISTS guards, and type mapping all happen
// there.
package ddl

// ColumnDef describes a single column of a table definition.
//
//   - Name: logical column name (unquoted; quoting happens at render time)
//   - Type: logical type ("text", "int", "date"); backends map it to a
//     concrete SQL type
//   - Nullable: whether NULL is allowed
type ColumnDef struct {
	Name     string
	Type     string
	Nullable bool
}

// TableDef holds a table name and its ordered columns. The name is expected
// to be a single already-sanitized identifier; per-country tables never live
// in a separate schema.
type TableDef struct {
	Name    string
	Columns []ColumnDef
}
