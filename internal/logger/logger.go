// Package logger wraps logrus so the rest of the service logs through one
// configured instance.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the application-wide structured logger
type Logger struct {
	*logrus.Logger
}

// New creates a logger writing to stdout at the given level. Unknown levels
// fall back to info.
func New(level string) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return &Logger{Logger: log}
}
