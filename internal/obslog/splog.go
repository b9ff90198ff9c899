package obslog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	cfg := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
		Compress:   false,
	}
	if v := os.Getenv("EBB_LOG_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSize = n
		}
	}
	if v := os.Getenv("EBB_LOG_MAX_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxBackups = n
		}
	}
	if v := os.Getenv("EBB_LOG_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAge = n
		}
	}
	return cfg
}

// Log is the CLI's console-plus-file logger. The console side has no
// framing of its own (no timestamp, no level prefix, no handler chain):
// ebb's real output is revision text and tree renderings written via
// Print, so the console path here exists only for short status lines and
// is written directly rather than routed through a slog.Handler. The
// file side, when enabled, is a genuine structured log (timestamped,
// rotated through lumberjack) for diagnosing a run after the fact, so it
// keeps slog's text encoding rather than hand-rolling one.
type Log struct {
	writer     *os.File
	debugMode  bool
	quiet      bool
	fileLogger *slog.Logger
	logWriter  io.WriteCloser
}

// New creates a console-only logger. Debug messages are enabled when the
// EBB_DEBUG environment variable is set.
func New() *Log {
	l, _ := NewWithFile("")
	return l
}

// NewWithFile creates a logger that also rotates structured records to
// logFilePath via lumberjack, when logFilePath is non-empty.
func NewWithFile(logFilePath string) (*Log, error) {
	l := &Log{
		writer:    os.Stdout,
		debugMode: os.Getenv("EBB_DEBUG") != "",
	}

	if logFilePath == "" {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	lj := createLumberjackLogger(logFilePath)
	l.logWriter = lj
	l.fileLogger = slog.New(slog.NewTextHandler(lj, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
			}
			return a
		},
	}))
	return l, nil
}

// SetQuiet suppresses console output (Print and every level); records
// still go to the log file, if one is attached.
func (l *Log) SetQuiet(quiet bool) { l.quiet = quiet }

// IsQuiet reports the current quiet state.
func (l *Log) IsQuiet() bool { return l.quiet }

// logMessage writes msg to the console (unless quiet, or it's a debug
// message and debug mode is off) and, if a file logger is attached,
// records it there unconditionally at the given level.
func (l *Log) logMessage(level slog.Level, msg string) {
	if !l.quiet && (level != slog.LevelDebug || l.debugMode) {
		fmt.Fprintln(l.writer, msg)
	}
	if l.fileLogger != nil {
		l.fileLogger.Log(context.Background(), level, msg)
	}
}

// Info writes an info message.
func (l *Log) Info(format string, args ...interface{}) {
	l.logMessage(slog.LevelInfo, sprintf(format, args...))
}

// Warn writes a warning message.
func (l *Log) Warn(format string, args ...interface{}) {
	l.logMessage(slog.LevelWarn, "warning: "+sprintf(format, args...))
}

// Error writes an error message.
func (l *Log) Error(format string, args ...interface{}) {
	l.logMessage(slog.LevelError, "error: "+sprintf(format, args...))
}

// Debug writes a debug message, shown only with EBB_DEBUG set.
func (l *Log) Debug(format string, args ...interface{}) {
	l.logMessage(slog.LevelDebug, sprintf(format, args...))
}

// Print writes raw content straight to the console, bypassing slog. Used
// for the revision snapshot text and tree renderings, which are the
// command's actual output rather than log chatter.
func (l *Log) Print(content string) {
	if l.quiet {
		return
	}
	_, _ = fmt.Fprint(l.writer, content)
}

// Close releases the rotated log file, if one is open.
func (l *Log) Close() error {
	if l.logWriter != nil {
		return l.logWriter.Close()
	}
	return nil
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
