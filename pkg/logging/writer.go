package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// WriterLogger writes formatted log entries to an io.Writer.
// Used for verbose console narration (stderr) and as the formatting
// core of the file logger.
type WriterLogger struct {
	mu     sync.Mutex
	writer io.Writer
	format Format
	level  Level
	fields Fields
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer, format Format, level Level) *WriterLogger {
	return &WriterLogger{
		writer: w,
		format: format,
		level:  level,
	}
}

// Debug logs a debug message
func (l *WriterLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *WriterLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *WriterLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *WriterLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger with additional fields
func (l *WriterLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &WriterLogger{
		writer: l.writer,
		format: l.format,
		level:  l.level,
		fields: merged,
	}
}

// Close does nothing: the writer is owned by the caller
func (l *WriterLogger) Close() error {
	return nil
}

func (l *WriterLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.level {
		return
	}

	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	line := formatEntry(l.format, level, msg, err, merged)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Write(line)
}

// formatEntry renders one log line in the requested format
func formatEntry(format Format, level Level, msg string, err error, fields Fields) []byte {
	if format == FormatJSON {
		entry := map[string]interface{}{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"level":     LevelString(level),
			"message":   msg,
		}
		if err != nil {
			entry["error"] = err.Error()
		}
		for k, v := range fields {
			entry[k] = v
		}

		data, jsonErr := json.Marshal(entry)
		if jsonErr != nil {
			return nil
		}
		return append(data, '\n')
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	line := fmt.Sprintf("%s [%s] %s", timestamp, LevelString(level), msg)
	if err != nil {
		line += fmt.Sprintf(" error=%q", err.Error())
	}
	for k, v := range fields {
		line += fmt.Sprintf(" %s=%v", k, v)
	}

	return []byte(line + "\n")
}
