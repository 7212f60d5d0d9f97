package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
}

// FileLogger implements Logger with append-mode file output and a
// single-backup size rotation. Organize runs are short lived, so one
// backup generation is enough history.
type FileLogger struct {
	config      FileLoggerConfig
	mu          sync.Mutex
	file        *os.File
	fields      Fields
	currentSize int64
}

// NewFileLogger creates a file logger, creating the log directory if needed
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &FileLogger{
		config:      config,
		file:        file,
		currentSize: info.Size(),
	}, nil
}

// Debug logs a debug message
func (l *FileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *FileLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *FileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *FileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger with additional fields sharing the same file
func (l *FileLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &fieldFileLogger{parent: l, fields: merged}
}

// Close flushes and closes the log file
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *FileLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.config.Level {
		return
	}

	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	line := formatEntry(l.config.Format, level, msg, err, merged)
	if line == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.config.MaxSize > 0 && l.currentSize >= l.config.MaxSize {
		l.rotate()
	}

	n, _ := l.file.Write(line)
	l.currentSize += int64(n)
}

// rotate replaces the current file, keeping one backup
func (l *FileLogger) rotate() {
	if l.file == nil {
		return
	}

	l.file.Close()
	os.Rename(l.config.Path, l.config.Path+".1")

	file, err := os.OpenFile(l.config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}

	l.file = file
	l.currentSize = 0
}

// fieldFileLogger is a field-scoped view over a shared FileLogger
type fieldFileLogger struct {
	parent *FileLogger
	fields Fields
}

func (l *fieldFileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.parent.log(DebugLevel, msg, nil, l.merge(fields))
}

func (l *fieldFileLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.parent.log(InfoLevel, msg, nil, l.merge(fields))
}

func (l *fieldFileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.parent.log(WarnLevel, msg, nil, l.merge(fields))
}

func (l *fieldFileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.parent.log(ErrorLevel, msg, err, l.merge(fields))
}

func (l *fieldFileLogger) WithFields(fields Fields) Logger {
	return &fieldFileLogger{parent: l.parent, fields: l.merge(fields)}
}

// Close is a no-op: the underlying file is owned by the root logger
func (l *fieldFileLogger) Close() error {
	return nil
}

func (l *fieldFileLogger) merge(fields Fields) Fields {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}
