// internal/pkg/logger/logger.go
package logger

import (
	"io"
	"os"
	"time"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/sirupsen/logrus"
)

// New builds the process logger from the logging config
func New(cfg *config.Config) *logrus.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter is New with an explicit output
func NewWithWriter(cfg *config.Config, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	format, levelName := "json", "info"
	if cfg != nil {
		format, levelName = cfg.Logging.Format, cfg.Logging.Level
	}

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg != nil {
		logger.AddHook(&appFieldsHook{fields: logrus.Fields{
			"app": cfg.App.Name,
			"env": cfg.App.Environment,
		}})
	}

	return logger
}

// Discard is a logger for tests
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type appFieldsHook struct {
	fields logrus.Fields
}

func (h *appFieldsHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *appFieldsHook) Fire(e *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := e.Data[k]; !ok {
			e.Data[k] = v
		}
	}
	return nil
}
