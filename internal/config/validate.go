// This file adds a lightweight linter for Pipeline values. It performs static
// checks over a decoded Pipeline and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.db.dsn"). Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownStorageKinds mirrors the backends wired in internal/storage/all.
var knownStorageKinds = map[string]bool{
	"sqlite":   true,
	"postgres": true,
	"mysql":    true,
	"mssql":    true,
}

var knownEncodings = map[string]bool{
	"":             true,
	"utf-8":        true,
	"utf8":         true,
	"latin-1":      true,
	"latin1":       true,
	"iso-8859-1":   true,
	"windows-1252": true,
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; it returns a slice of Issue values and callers decide
// whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels logs and metrics for the run",
		})
	}

	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateStorage(p.Storage)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	switch s.Kind {
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.file.path",
				Message:  "path must not be empty for source.kind=file",
			})
		}
		if !knownEncodings[strings.ToLower(strings.TrimSpace(s.File.Encoding))] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.file.encoding",
				Message:  fmt.Sprintf("unsupported encoding %q", s.File.Encoding),
			})
		}
	case "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind is required",
		})
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unsupported source.kind %q", s.Kind),
		})
	}

	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue

	switch p.Kind {
	case "delimited":
		if comma := p.Options.String("comma", "|"); len([]rune(comma)) != 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "parser.options.comma",
				Message:  fmt.Sprintf("comma must be a single character, got %q", comma),
			})
		}
		if rt := p.Options.String("record_type", "D"); strings.TrimSpace(rt) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "parser.options.record_type",
				Message:  "record_type must not be blank",
			})
		}
	case "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  "parser.kind is required",
		})
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unsupported parser.kind %q", p.Kind),
		})
	}

	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if s.Kind == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind is required",
		})
	} else if !knownStorageKinds[s.Kind] {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage.kind %q", s.Kind),
		})
	}

	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "dsn must not be empty",
		})
	}

	if p := s.DB.TablePrefix; p != "" && !validTablePrefix(p) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table_prefix",
			Message:  fmt.Sprintf("table_prefix %q is not a safe identifier prefix", p),
		})
	}

	return issues
}

// validTablePrefix accepts prefixes that keep the final table name a safe SQL
// identifier: a leading letter or underscore followed by letters, digits, or
// underscores.
func validTablePrefix(p string) bool {
	for i, r := range p {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
