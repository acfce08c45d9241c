package core

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLogLevel maps a level name to a LogLevel. Unknown names default to
// info.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// StdLogger is a leveled Logger writing structured lines to stderr. Format
// "json" emits one JSON object per line for aggregators; "text" emits
// human-readable key=value lines for local development.
type StdLogger struct {
	mu     sync.Mutex
	level  LogLevel
	format string
	out    *os.File
}

// NewStdLogger creates a logger with the given level name and format
// ("json" or "text").
func NewStdLogger(level, format string) *StdLogger {
	if format != "json" {
		format = "text"
	}
	return &StdLogger{
		level:  ParseLogLevel(level),
		format: format,
		out:    os.Stderr,
	}
}

// SetLevel sets the logging level
func (l *StdLogger) SetLevel(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = ParseLogLevel(level)
}

// Debug logs a debug message
func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(DebugLevel, "DEBUG", msg, fields)
}

// Info logs an info message
func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.log(InfoLevel, "INFO", msg, fields)
}

// Warn logs a warning message
func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(WarnLevel, "WARN", msg, fields)
}

// Error logs an error message
func (l *StdLogger) Error(msg string, fields map[string]interface{}) {
	l.log(ErrorLevel, "ERROR", msg, fields)
}

func (l *StdLogger) log(level LogLevel, name, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	now := time.Now().Format(time.RFC3339Nano)

	if l.format == "json" {
		entry := make(map[string]interface{}, len(fields)+3)
		for k, v := range fields {
			entry[k] = normalizeField(v)
		}
		entry["time"] = now
		entry["level"] = name
		entry["msg"] = msg
		line, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, `{"time":%q,"level":%q,"msg":%q}`+"\n", now, name, msg)
			return
		}
		fmt.Fprintln(l.out, string(line))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", now, name, msg)
	for _, k := range sortedKeys(fields) {
		fmt.Fprintf(&b, " %s=%v", k, normalizeField(fields[k]))
	}
	fmt.Fprintln(l.out, b.String())
}

// normalizeField renders non-JSON-friendly values (errors, in particular) as
// strings.
func normalizeField(v interface{}) interface{} {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}

func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
