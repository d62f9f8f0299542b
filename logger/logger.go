package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the service logger. Unknown levels fall back to info and any
// format other than "json" uses the text formatter.
func New(level, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if out == nil {
		out = os.Stdout
	}
	log.SetOutput(out)

	return log
}

// WithService tags every entry with the emitting service name.
func WithService(log *logrus.Logger, service string) *logrus.Entry {
	return log.WithField("service", service)
}
