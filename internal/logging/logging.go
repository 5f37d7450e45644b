// Package logging configures the logrus logger used for engine and server
// diagnostics. Player-facing text never goes through it.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// EnvLevel is the environment variable consulted when no level is given.
	EnvLevel = "DARKSTAR_LOG_LEVEL"

	// EnvFormat is the environment variable consulted when no format is given.
	EnvFormat = "DARKSTAR_LOG_FORMAT"
)

// Setup creates a logger with the given level and format. Level is any string
// accepted by logrus.ParseLevel and defaults to "info". Format is "text" or
// "json" and defaults to "text". Blank arguments are filled in from EnvLevel
// and EnvFormat before the defaults are applied.
func Setup(level, format string) (*logrus.Logger, error) {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if level == "" {
		level = "info"
	}
	if format == "" {
		format = os.Getenv(EnvFormat)
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	log := logrus.New()
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)

	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return nil, fmt.Errorf("log format must be one of 'text' or 'json': %q", format)
	}

	return log, nil
}

// Discard returns a logger that drops everything. It is used where a logger is
// required but none was supplied, such as in tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
