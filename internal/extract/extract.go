// Package extract reads the raw pipe-delimited customer file into records.
// It skips the header line, keeps only detail rows, and strips the
// record-type discriminator from the output schema.
package extract

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"custetl/internal/schema"
	"custetl/pkg/records"
)

// utf8BOM is stripped from the first cell of the first data line if present.
const utf8BOM = "\uFEFF"

// Source abstracts where the raw bytes come from; satisfied by
// datasource/file.Local.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Options configures the extractor. Zero values select the feed defaults.
type Options struct {
	// Comma is the field delimiter. Default '|'.
	Comma rune

	// SkipHeader drops the first line of the file. Default true; set
	// NoHeader to true for headerless test fixtures.
	NoHeader bool

	// RecordType is the detail-row marker. Default "D".
	RecordType string

	// TrimSpace trims leading/trailing spaces from every field. Default true;
	// set KeepSpace to true to disable.
	KeepSpace bool
}

func (o Options) comma() rune {
	if o.Comma == 0 {
		return '|'
	}
	return o.Comma
}

func (o Options) recordType() string {
	if o.RecordType == "" {
		return "D"
	}
	return o.RecordType
}

// Extractor turns the raw delimited file into records keyed by canonical
// column names.
type Extractor struct {
	src Source
	opt Options
	log logrus.FieldLogger
}

// New constructs an Extractor over src.
func New(src Source, opt Options, log logrus.FieldLogger) *Extractor {
	return &Extractor{src: src, opt: opt, log: log}
}

// Extract reads the whole file and returns the detail records. Malformed rows
// (wrong field count, csv-level errors) are dropped per-row and counted in
// skipped; the run continues. Open and read failures of the file itself
// return an error, and the caller fails the stage closed with an empty
// result.
func (e *Extractor) Extract(ctx context.Context) (recs []records.Record, skipped int, err error) {
	rc, err := e.src.Open(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("open source: %w", err)
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	cr.Comma = e.opt.comma()
	// Width is enforced below so short rows drop instead of aborting the read.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	if !e.opt.NoHeader {
		if _, err := cr.Read(); err != nil {
			if err == io.EOF {
				return nil, 0, nil
			}
			return nil, 0, fmt.Errorf("read header: %w", err)
		}
	}

	marker := e.opt.recordType()
	want := len(schema.InputColumns)

	for line := 1; ; line++ {
		select {
		case <-ctx.Done():
			return nil, skipped, ctx.Err()
		default:
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				e.log.WithField("line", line).Warnf("skipping row: %v", err)
				skipped++
				continue
			}
			// Not a row-level parse problem: the underlying reader failed.
			return nil, skipped, fmt.Errorf("read input: %w", err)
		}

		if line == 1 && len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], utf8BOM)
		}

		// Some exports lead every line with the delimiter, which parses as an
		// extra empty first field.
		if len(row) == want+1 && row[0] == "" {
			row = row[1:]
		}

		if len(row) != want {
			e.log.WithField("line", line).
				Warnf("skipping row: expected %d fields, got %d", want, len(row))
			skipped++
			continue
		}

		if e.fieldValue(row[0]) != marker {
			continue
		}

		rec := make(records.Record, want-1)
		for i, name := range schema.InputColumns[1:] {
			rec[name] = emptyToNil(e.fieldValue(row[i+1]))
		}
		recs = append(recs, rec)
	}

	return recs, skipped, nil
}

func (e *Extractor) fieldValue(s string) string {
	if e.opt.KeepSpace {
		return s
	}
	return strings.TrimSpace(s)
}

// emptyToNil converts an empty string to nil so missing and empty fields are
// indistinguishable downstream.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
