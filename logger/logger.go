package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Service string
	Env     string
	Level   string
}

// New configures the standard logrus logger and returns an entry tagged with
// the service and environment.
func New(opts Options) *logrus.Entry {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stdout)
	log.SetLevel(ParseLevel(opts.Level))

	if opts.Env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log.WithFields(logrus.Fields{
		"service": opts.Service,
		"env":     opts.Env,
	})
}

func ParseLevel(lvl string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
