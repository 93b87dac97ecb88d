// Package log is a small leveled logger that writes one JSON object per line.
// The terminal belongs to the UI, so output normally goes to a file.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

var defaultLogger = New(io.Discard, LevelInfo)

type Level int32

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func (level Level) String() string {
	switch level {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel parses a log level string into a Level.
// Valid log levels are: error, warn, info, debug, trace.
func ParseLevel(level string) (Level, error) {
	switch level {
	case "error":
		return LevelError, nil
	case "warn":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return LevelError, fmt.Errorf("unknown log level: %s", level)
	}
}

type Logger struct {
	logger *stdlog.Logger
	level  atomic.Int32
	now    func() time.Time
}

func New(out io.Writer, level Level) *Logger {
	l := &Logger{
		logger: stdlog.New(out, "", 0),
		now:    time.Now,
	}
	l.level.Store(int32(level))
	return l
}

func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *Logger) SetOutput(out io.Writer) {
	l.logger.SetOutput(out)
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if int32(level) > l.level.Load() {
		return
	}
	entry := map[string]any{
		"time":  l.now().UTC().Format(time.RFC3339Nano),
		"level": level.String(),
		"msg":   fmt.Sprintf(format, args...),
	}
	msgBytes, _ := json.Marshal(entry)
	l.logger.Print(string(msgBytes))
}

func (l *Logger) Error(format string, args ...any) { l.logf(LevelError, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Trace(format string, args ...any) { l.logf(LevelTrace, format, args...) }

// Default returns the package-level logger.
func Default() *Logger { return defaultLogger }

func SetLevel(level Level)     { defaultLogger.SetLevel(level) }
func SetOutput(out io.Writer) { defaultLogger.SetOutput(out) }

func Error(format string, args ...any) { defaultLogger.Error(format, args...) }
func Warn(format string, args ...any)  { defaultLogger.Warn(format, args...) }
func Info(format string, args ...any)  { defaultLogger.Info(format, args...) }
func Debug(format string, args ...any) { defaultLogger.Debug(format, args...) }
func Trace(format string, args ...any) { defaultLogger.Trace(format, args...) }

// OpenFile opens path for appending, creating its directory if needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
