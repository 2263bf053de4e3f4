// Package logging configures the process-wide logrus logger.
//
// Log lines go to stderr by default so they never interleave with a progress
// line drawn on stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// log fields keys
const (
	// ComponentFieldKey name of the subsystem logging (string)
	ComponentFieldKey = "component"
	// BucketFieldKey bucket URL (string)
	BucketFieldKey = "bucket"
	// KeyFieldKey object key inside a bucket (string)
	KeyFieldKey = "key"
	// URLFieldKey HTTP source URL (string)
	URLFieldKey = "url"
	// BytesFieldKey byte count (int64)
	BytesFieldKey = "bytes"
)

var defaultLogger = newLogger()

type Fields = logrus.Fields

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(textFormatter())
	return l
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		FullTimestamp:          true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
		QuoteEmptyFields:       true,
	}
}

// Default returns an entry on the process-wide logger.
func Default() logrus.FieldLogger {
	return logrus.NewEntry(defaultLogger)
}

// Component returns an entry tagged with the component name.
func Component(name string) logrus.FieldLogger {
	return defaultLogger.WithField(ComponentFieldKey, name)
}

func Level() string {
	return defaultLogger.GetLevel().String()
}

// SetLevel accepts the logrus level names plus "none" to silence logging.
func SetLevel(level string) error {
	switch strings.ToLower(level) {
	case "null", "none":
		defaultLogger.SetLevel(logrus.PanicLevel)
		defaultLogger.SetOutput(io.Discard)
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defaultLogger.SetLevel(lvl)
	return nil
}

func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetOutputFormat switches between "text" and "json".
func SetOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "text":
		defaultLogger.SetFormatter(textFormatter())
	case "json":
		defaultLogger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("logging: unknown format %q", format)
	}
	return nil
}
