package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.New()
}

// LogSettings is the subset of configuration the logger needs.
type LogSettings struct {
	Level string
	// Optional file; logs go to stdout when empty.
	File string
}

// InitLogger configures the shared logger. The returned closer releases the
// log file, if any.
func InitLogger(s LogSettings) (io.Closer, error) {
	level, err := logrus.ParseLevel(s.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if s.File == "" {
		logger.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}

	file, err := os.OpenFile(s.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(file)
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewSublogger returns an entry tagged with the given module name.
func NewSublogger(tag string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{"module": "boxity." + tag})
}
