package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"custetl/internal/config"
	"custetl/internal/logging"
	"custetl/internal/metrics"
	"custetl/internal/metrics/datadog"
	"custetl/internal/metrics/prompush"
	"custetl/internal/pipeline"

	// register all backends with the storage factory.
	// config selects which one to use; the binary carries support for all.
	_ "custetl/internal/storage/all"
)

// main loads the pipeline config, optionally initializes a metrics backend,
// and executes one batch run.
func main() {
	var (
		cfgPath        string
		metricsBackend string
		pushGatewayURL string
		statsdAddr     string
		validate       bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipelines/customers.json", "pipeline config JSON path")
	flag.StringVar(&metricsBackend, "metrics-backend", "none", "metrics backend to use (pushgateway, datadog, none)")
	flag.StringVar(&pushGatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&statsdAddr, "statsd-addr", "", "DogStatsD address (overrides env DD_AGENT_ADDR)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	// Local overrides; absence is not an error.
	_ = godotenv.Load()

	log := logging.New(os.Stderr, *verbose)

	f, err := os.Open(cfgPath)
	if err != nil {
		fatalf("open config: %v", err)
	}
	defer f.Close()

	var p config.Pipeline
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		fatalf("decode config: %v", err)
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Errorf("configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Infof("configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	if metricsBackend == "" {
		metricsBackend = os.Getenv("METRICS_BACKEND")
	}
	switch metricsBackend {
	case "pushgateway":
		gwURL := pushGatewayURL
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(p.Job, gwURL)
		if err != nil {
			log.Warnf("metrics: pushgateway init failed: %v; metrics disabled", err)
			break
		}
		log.WithFields(logrus.Fields{"backend": metricsBackend, "url": gwURL}).
			Info("metrics enabled")
		metrics.SetBackend(b)
		defer func() {
			if err := metrics.Flush(); err != nil {
				log.Warnf("metrics: flush error: %v", err)
			}
		}()

	case "datadog":
		addr := statsdAddr
		if addr == "" {
			addr = os.Getenv("DD_AGENT_ADDR")
		}
		if addr == "" {
			addr = "127.0.0.1:8125"
		}
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       addr,
			Namespace:  "custetl.",
			GlobalTags: []string{"job:" + p.Job},
		})
		if err != nil {
			log.Warnf("metrics: datadog init failed: %v; metrics disabled", err)
			break
		}
		log.WithFields(logrus.Fields{"backend": metricsBackend, "addr": addr}).
			Info("metrics enabled")
		metrics.SetBackend(b)
		defer func() {
			if err := metrics.Flush(); err != nil {
				log.Warnf("metrics: flush error: %v", err)
			}
		}()

	case "", "none":
		log.Debug("metrics disabled")

	default:
		log.Warnf("metrics: unknown backend %q; metrics disabled", metricsBackend)
	}

	start := time.Now()
	sum, err := pipeline.Run(context.Background(), p, log)
	if err != nil {
		log.WithField("stage_completed", sum.Stage).Fatalf("run failed: %v", err)
	}

	log.WithFields(logrus.Fields{
		"extracted":       sum.Extracted,
		"skipped":         sum.Skipped,
		"date_dropped":    sum.DateDropped,
		"deduped":         sum.DeDuped,
		"country_dropped": sum.CountryDropped,
		"loaded":          sum.Loaded,
		"tables":          len(sum.Tables),
		"elapsed":         time.Since(start).Truncate(time.Millisecond).String(),
	}).Info("run complete")
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
