package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// Logger wraps logrus with the optional daemon log file.
type Logger struct {
	*logrus.Logger
	file *os.File
}

// New returns a logger writing to stderr. Used by foreground CLI commands.
func New() *Logger {
	inner := logrus.New()
	inner.SetLevel(logrus.InfoLevel)
	inner.SetFormatter(&compactFormatter{})
	inner.SetOutput(os.Stderr)
	return &Logger{Logger: inner}
}

// NewWithFile returns a logger that writes everything to stderr and info and
// above to the given file. The daemonized child runs with stdio detached, so
// the file is the only place its output lands.
func NewWithFile(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	inner := logrus.New()
	inner.SetLevel(logrus.InfoLevel)
	inner.SetFormatter(&compactFormatter{})
	inner.SetOutput(io.Discard)

	inner.AddHook(&writer.Hook{
		Writer:    os.Stderr,
		LogLevels: logrus.AllLevels,
	})
	inner.AddHook(&writer.Hook{
		Writer: file,
		LogLevels: []logrus.Level{logrus.InfoLevel, logrus.WarnLevel,
			logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel},
	})

	return &Logger{Logger: inner, file: file}, nil
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	_ = l.file.Sync()
	return l.file.Close()
}
