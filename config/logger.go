package config

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. JSON output so Cloud Run log
// aggregation picks up the fields; level comes from LOG_LEVEL.
func NewLogger() *logrus.Logger {
	logg := logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetOutput(os.Stdout)

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		logg.SetLevel(logrus.DebugLevel)
	case "warn":
		logg.SetLevel(logrus.WarnLevel)
	case "error":
		logg.SetLevel(logrus.ErrorLevel)
	default:
		logg.SetLevel(logrus.InfoLevel)
	}
	return logg
}
