// Package logging provides file-based logging for vtodo.
// Every entry goes to the global log (<data>/logs/vtodo.log); entries about
// a task are also appended to that task's log (<data>/logs/task-N.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/vtodo/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted entries to log files below the data directory.
// Fields are ordered to minimize memory padding.
type Logger struct {
	clock      domain.Clock
	globalFile *os.File
	taskFiles  map[int]*os.File
	dataDir    string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a Logger writing below dataDir.
// If dataDir is empty, logging is disabled. A nil clock uses the system clock.
func New(dataDir string, level slog.Level, clock domain.Clock) *Logger {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Logger{
		clock:     clock,
		dataDir:   dataDir,
		level:     level,
		taskFiles: make(map[int]*os.File),
	}
}

// ParseLevel parses a log level name into slog.Level.
// Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLog opens path for appending, creating the logs directory first.
func (l *Logger) openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// writers returns the files an entry for taskID goes to.
// Must be called with l.mu held.
func (l *Logger) writers(taskID int) []io.Writer {
	var out []io.Writer

	if l.globalFile == nil {
		if f, err := l.openLog(domain.GlobalLogPath(l.dataDir)); err == nil {
			l.globalFile = f
		}
	}
	if l.globalFile != nil {
		out = append(out, l.globalFile)
	}

	if taskID > 0 {
		f, ok := l.taskFiles[taskID]
		if !ok {
			var err error
			if f, err = l.openLog(domain.TaskLogPath(l.dataDir, taskID)); err == nil {
				l.taskFiles[taskID] = f
				ok = true
			}
		}
		if ok {
			out = append(out, f)
		}
	}
	return out
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.taskFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.taskFiles, id)
	}
	return lastErr
}

// formatLog formats one log line.
// Format: [2026-03-01 09:32:51] [INFO] [task-1] [voice] message
// Line breaks in msg are escaped so a spoken transcript stays on one line.
func formatLog(t time.Time, level slog.Level, taskID int, category, msg string) string {
	scope := "global"
	if taskID > 0 {
		scope = fmt.Sprintf("task-%d", taskID)
	}
	msg = strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(msg)
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelName(level),
		scope,
		category,
		msg,
	)
}

func levelName(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log and, for taskID > 0, the task log.
func (l *Logger) log(level slog.Level, taskID int, category, msg string) {
	if l.dataDir == "" || level < l.level {
		return
	}

	entry := formatLog(l.clock.Now(), level, taskID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range l.writers(taskID) {
		_, _ = io.WriteString(w, entry)
	}
}

// Info logs an info message.
func (l *Logger) Info(taskID int, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID int, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID int, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID int, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}
