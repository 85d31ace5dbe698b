package logger

import "strings"

// Level is a log severity. Higher values are more severe.
type Level int

// Log level constants for filtering
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"trace": LevelTrace,
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

// ParseLevel converts a level name (case-insensitive) to a Level.
// Empty or invalid names default to LevelInfo.
func ParseLevel(name string) Level {
	if lvl, ok := levelNames[normalizeLogLevel(name)]; ok {
		return lvl
	}
	return LevelInfo
}

// ValidLevel reports whether name is one of trace, debug, info, warn, error.
func ValidLevel(name string) bool {
	_, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if _, ok := levelNames[normalized]; ok {
		return normalized
	}
	return "info"
}

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Label returns the uppercase label used in formatted lines.
func (l Level) Label() string {
	return strings.ToUpper(l.String())
}
