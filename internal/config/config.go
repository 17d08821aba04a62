// Package config defines the canonical, JSON-serializable configuration model
// for the customer ETL. It is intentionally small, explicit, and dependency-
// free so that pipeline files can be loaded from disk and passed through the
// program without additional glue code.
//
// Example (trimmed):
//
//	{
//	  "job":     "customer_vaccination",
//	  "source":  { "kind": "file", "file": { "path": "data/customers.txt" } },
//	  "parser":  { "kind": "delimited", "options": { "comma": "|", "record_type": "D" } },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "file:customers.db", "table_prefix": "Table_" } }
//	}
package config

import "encoding/json"

// Pipeline describes one full ETL run. It is the top-level object decoded
// from a pipeline file (e.g. configs/pipelines/*.json).
type Pipeline struct {
	// Job names the run; it labels logs and metrics.
	Job string `json:"job"`

	// Source describes where the input file comes from.
	Source Source `json:"source"`

	// Parser configures how raw bytes become records.
	Parser Parser `json:"parser"`

	// Storage describes the destination database.
	Storage Storage `json:"storage"`
}

// Source identifies the data source. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`

	// Encoding optionally names the input charset: "utf-8" (default),
	// "latin-1"/"iso-8859-1", or "windows-1252". Legacy exports from regional
	// systems are occasionally not UTF-8.
	Encoding string `json:"encoding"`
}

// Parser selects how to parse the raw source into records.
type Parser struct {
	// Kind selects the parser implementation. Current value: "delimited".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For "delimited", recognized keys:
	//   comma (string, default "|"), skip_header (bool, default true),
	//   record_type (string, default "D"), trim_space (bool, default true)
	Options Options `json:"options"`
}

// Storage selects the sink used to persist transformed records.
type Storage struct {
	// Kind selects the storage backend: "sqlite", "postgres", "mysql", "mssql".
	Kind string `json:"kind"`

	// DB configures the selected backend.
	DB DBConfig `json:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the backend connection string (a file path or file: URI for
	// sqlite, a postgresql:// URL for postgres, and so on).
	DSN string `json:"dsn"`

	// TablePrefix is prepended to the sanitized country value to form each
	// destination table name. Defaults to "Table_" when empty.
	TablePrefix string `json:"table_prefix"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It performs only
// minimal type coercion and returns the provided defaults when a key is
// absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64,
// so this method accepts float64 and casts to int.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for the field delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object decodes to a non-nil, empty Options map. This removes the
// need to nil-check Options at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
