// Package logger builds the process logger
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/siana-blue/poufalouf/config"
)

// New returns a logger configured from cfg
// LOG_LEVEL and LOG_FORMAT override the configured level and format when set
func New(cfg config.Log) (*logrus.Logger, error) {
	log := logrus.New()

	logLevel := cfg.Level
	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		logLevel = env
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	logFormat := cfg.Format
	if env, ok := os.LookupEnv("LOG_FORMAT"); ok {
		logFormat = env
	}
	if strings.ToLower(logFormat) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	log.SetOutput(os.Stdout)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
	}
	return log, nil
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Close releases the log file, if any
func Close(log *logrus.Logger) error {
	if c, ok := log.Out.(io.Closer); ok && log.Out != os.Stdout && log.Out != os.Stderr {
		return c.Close()
	}
	return nil
}
