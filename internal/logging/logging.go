// Package logging builds the logrus loggers handed to each pipeline
// component. Components receive a logrus.FieldLogger; nothing in the
// pipeline reaches for a package-global logger.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to out. Verbose enables debug-level output
// (per-stage sample rows, SQL previews).
func New(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// ForJob scopes a logger to one pipeline run.
func ForJob(logger logrus.FieldLogger, job string) logrus.FieldLogger {
	return logger.WithField("job", job)
}

// ForStage scopes a run logger to one pipeline stage.
func ForStage(logger logrus.FieldLogger, stage string) logrus.FieldLogger {
	return logger.WithField("stage", stage)
}
