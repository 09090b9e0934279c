package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logsDir          = "logs"
	fileBufferSize   = 32 * 1024
	consoleQueueSize = 4096
)

var serverTypePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Logger bundles the logrus logger with the async sinks that must be drained on exit.
type Logger struct {
	*logrus.Logger
	closers []io.Closer
}

// NewLogger logs JSON to logs/<serverType>.log and mirrors every entry to stdout.
func NewLogger(serverType string) (*Logger, error) {
	return newLogger(logsDir, serverType, os.Stdout)
}

func newLogger(dir, serverType string, console io.Writer) (*Logger, error) {
	if !serverTypePattern.MatchString(serverType) {
		return nil, fmt.Errorf("invalid server type %q for log file name", serverType)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})

	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	asyncWriter, err := NewAsyncFileWriter(filepath.Join(dir, serverType+".log"), fileBufferSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize async log writer: %w", err)
	}
	logger.SetOutput(asyncWriter)

	consoleHook := NewAsyncConsoleHook(console, consoleQueueSize)
	logger.AddHook(consoleHook)

	return &Logger{Logger: logger, closers: []io.Closer{consoleHook, asyncWriter}}, nil
}

// Close drains the console queue and flushes the log file.
func (l *Logger) Close() error {
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
