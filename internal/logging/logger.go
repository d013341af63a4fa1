// Package logging builds the structured logger used by the CLI.
package logging

import (
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// Logger adapts l.Logger to normalize.Logger and adds Close.
type Logger struct {
	logger l.Logger
}

// New creates a logger writing to stderr, as text or as JSON lines.
func New(jsonFormat bool) (*Logger, error) {
	return NewWithWriter(os.Stderr, jsonFormat)
}

// NewWithWriter creates a logger writing to w.
// Writes are synchronous so log lines interleave correctly with command output.
func NewWithWriter(w io.Writer, jsonFormat bool) (*Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      w,
		JsonFormat:  jsonFormat,
		AsyncWrite:  false,
		BufferSize:  64 * 1024,
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   false,
		Metrics:     false,
	})
	if err != nil {
		return nil, err
	}

	return &Logger{logger: logger}, nil
}

// Debug logs a debug message.
func (lg *Logger) Debug(msg string, keysAndValues ...interface{}) {
	lg.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (lg *Logger) Info(msg string, keysAndValues ...interface{}) {
	lg.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (lg *Logger) Warn(msg string, keysAndValues ...interface{}) {
	lg.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (lg *Logger) Error(msg string, keysAndValues ...interface{}) {
	lg.logger.Error(msg, keysAndValues...)
}

// Close flushes and closes the logger.
func (lg *Logger) Close() error {
	return lg.logger.Close()
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Close() error                 { return nil }
