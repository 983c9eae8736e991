package mapevent

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger writing to stderr. level is a logrus level name
// ("debug", "info", "warn", ...) and falls back to info; format "json"
// selects the JSON formatter, anything else the text formatter.
func NewLogger(level, format string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	log.SetOutput(os.Stderr)
	return log
}
