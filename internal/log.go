package internal

import (
	"io"
	"log"
	"strings"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var levelNames = [...]string{"ERROR", "WARN", "INFO", "DEBUG", "TRACE"}

func (l LogLevel) String() string {
	if l < LogLevelError || l > LogLevelTrace {
		return "INFO"
	}
	return levelNames[l]
}

// ParseLogLevel maps LOG_LEVEL values to a level; anything unknown is INFO
func ParseLogLevel(levelStr string) LogLevel {
	name := strings.ToUpper(strings.TrimSpace(levelStr))
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i)
		}
	}
	return LogLevelInfo
}

// Logger writes "[LEVEL] [Component] message" lines through a standard logger
type Logger struct {
	level     LogLevel
	component string
	out       *log.Logger
}

// NewLogger logs through the process-wide standard logger
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level, out: log.Default()}
}

// NewLoggerTo logs to w with the standard date and time flags
func NewLoggerTo(w io.Writer, level LogLevel) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// With returns a logger sharing the output and level that tags lines with component
func (l *Logger) With(component string) *Logger {
	return &Logger{level: l.level, component: component, out: l.out}
}

// Enabled reports whether messages at level are written
func (l *Logger) Enabled(level LogLevel) bool {
	return level <= l.level
}

func (l *Logger) logf(level LogLevel, format string, args []interface{}) {
	if !l.Enabled(level) {
		return
	}
	prefix := "[" + level.String() + "] "
	if l.component != "" {
		prefix += "[" + l.component + "] "
	}
	l.out.Printf(prefix+format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) { l.logf(LogLevelError, format, args) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(LogLevelWarn, format, args) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(LogLevelInfo, format, args) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LogLevelDebug, format, args) }
func (l *Logger) Trace(format string, args ...interface{}) { l.logf(LogLevelTrace, format, args) }
