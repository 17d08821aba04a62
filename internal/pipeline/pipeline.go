// Package pipeline runs one full batch: extract, validate, transform, dedup,
// load. Stages execute synchronously in order; each stage consumes the
// previous stage's output in full before the next begins, so a failing stage
// leaves the store untouched.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"custetl/internal/config"
	"custetl/internal/datasource/file"
	"custetl/internal/extract"
	"custetl/internal/load"
	"custetl/internal/logging"
	"custetl/internal/metrics"
	"custetl/internal/schema"
	"custetl/internal/storage"
	"custetl/internal/transform"
)

// Stage names, in execution order. Summary.Stage records the last stage that
// completed.
const (
	StageExtract   = "extract"
	StageValidate  = "validate"
	StageTransform = "transform"
	StageLoad      = "load"
)

// Error taxonomy for callers that branch on failure class rather than stage.
var (
	// ErrRead covers source open/read/decode failures.
	ErrRead = errors.New("read failure")
	// ErrSchema covers records that do not satisfy the contract.
	ErrSchema = errors.New("schema failure")
	// ErrStorage covers backend open, DDL, and load failures.
	ErrStorage = errors.New("storage failure")
)

// Summary reports what one run did. Counts are per-row; Tables lists every
// destination table touched.
type Summary struct {
	Job   string
	Stage string

	Extracted      int
	Skipped        int
	DateDropped    int
	DeDuped        int
	CountryDropped int
	Loaded         int64

	Tables      []string
	TableCounts map[string]int64
}

// Run executes the pipeline described by cfg. The returned Summary is valid
// even on error: its Stage field names the last stage that completed, and its
// counts cover everything that ran before the failure.
func Run(ctx context.Context, cfg config.Pipeline, log logrus.FieldLogger) (Summary, error) {
	sum := Summary{Job: cfg.Job}
	log = logging.ForJob(log, cfg.Job)

	// Extract.
	src := file.NewLocal(cfg.Source.File.Path, cfg.Source.File.Encoding)
	ext := extract.New(src, extract.Options{
		Comma:      cfg.Parser.Options.Rune("comma", '|'),
		NoHeader:   !cfg.Parser.Options.Bool("skip_header", true),
		RecordType: cfg.Parser.Options.String("record_type", "D"),
		KeepSpace:  !cfg.Parser.Options.Bool("trim_space", true),
	}, logging.ForStage(log, StageExtract))

	start := time.Now()
	recs, skipped, err := ext.Extract(ctx)
	metrics.RecordStage(cfg.Job, StageExtract, err, time.Since(start))
	if err != nil {
		return sum, fmt.Errorf("extract: %w: %w", ErrRead, err)
	}
	sum.Stage = StageExtract
	sum.Extracted = len(recs)
	sum.Skipped = skipped
	metrics.RecordRows(cfg.Job, "extracted", int64(len(recs)))
	metrics.RecordRows(cfg.Job, "skipped", int64(skipped))
	log.WithFields(logrus.Fields{"records": len(recs), "skipped": skipped}).
		Info("extract complete")
	if len(recs) > 0 {
		log.WithField("sample", recs[0]).Debug("first extracted record")
	}

	// Validate.
	start = time.Now()
	recs, err = transform.NewValidator(schema.Customers(), logging.ForStage(log, StageValidate)).Validate(recs)
	metrics.RecordStage(cfg.Job, StageValidate, err, time.Since(start))
	if err != nil {
		return sum, fmt.Errorf("validate: %w: %w", ErrSchema, err)
	}
	sum.Stage = StageValidate

	// Transform and dedup.
	start = time.Now()
	customers, dateDropped := transform.NewTransformer(nil, logging.ForStage(log, StageTransform)).Transform(recs)
	deduped := transform.DeDup(customers)
	metrics.RecordStage(cfg.Job, StageTransform, nil, time.Since(start))
	sum.Stage = StageTransform
	sum.DateDropped = dateDropped
	sum.DeDuped = len(customers) - len(deduped)
	metrics.RecordRows(cfg.Job, "date_dropped", int64(dateDropped))
	metrics.RecordRows(cfg.Job, "deduped", int64(sum.DeDuped))
	log.WithFields(logrus.Fields{
		"customers":    len(deduped),
		"date_dropped": dateDropped,
		"deduped":      sum.DeDuped,
	}).Info("transform complete")

	// Load. A run that produced nothing ends here so the store is never
	// opened, let alone written.
	if len(deduped) == 0 {
		log.Info("no usable records; store left untouched")
		sum.Stage = StageLoad
		return sum, nil
	}

	start = time.Now()
	repo, err := storage.New(ctx, storage.Config{
		Kind: cfg.Storage.Kind,
		DSN:  cfg.Storage.DB.DSN,
	})
	if err != nil {
		metrics.RecordStage(cfg.Job, StageLoad, err, time.Since(start))
		return sum, fmt.Errorf("open storage: %w: %w", ErrStorage, err)
	}
	defer repo.Close()

	loader := load.NewLoader(repo, cfg.Storage.Kind, cfg.Storage.DB.TablePrefix, logging.ForStage(log, StageLoad))
	res, err := loader.Load(ctx, deduped)
	metrics.RecordStage(cfg.Job, StageLoad, err, time.Since(start))
	sum.CountryDropped = res.Dropped
	metrics.RecordRows(cfg.Job, "country_dropped", int64(res.Dropped))
	if err != nil {
		return sum, fmt.Errorf("load: %w: %w", ErrStorage, err)
	}
	sum.Stage = StageLoad
	sum.Loaded = res.Loaded
	sum.Tables = res.Tables
	metrics.RecordRows(cfg.Job, "loaded", res.Loaded)
	metrics.RecordTables(cfg.Job, int64(len(res.Tables)))

	counts, err := loader.TableCounts(ctx, res.Tables)
	if err != nil {
		return sum, fmt.Errorf("verify load: %w: %w", ErrStorage, err)
	}
	sum.TableCounts = counts
	for _, table := range res.Tables {
		log.WithFields(logrus.Fields{"table": table, "rows": counts[table]}).
			Info("table loaded")
	}

	return sum, nil
}
