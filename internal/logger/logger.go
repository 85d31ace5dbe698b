// Package logger provides named, leveled loggers for multilint and its tool runners.
//
// A Logger renders records through a format compiled at construction time and
// hands them to a Backend (console, JSON run log, or both). A Capture wraps a
// Logger as an io.Writer so that tool output meant for a stream ends up as
// log records instead.
package logger

import (
	"fmt"
	"strings"
	"time"
)

// DefaultFormat is the format used when none is given.
const DefaultFormat = "[{time}] [{level}] [{name}] {msg}"

// Record is a single log event.
type Record struct {
	Time    time.Time
	Name    string
	Level   Level
	Message string
}

// Backend receives records from loggers. Implementations must be safe for
// use by several loggers at once.
type Backend interface {
	Emit(rec Record, format *Format)
}

// Logger is a named logger with a minimum level.
type Logger struct {
	name    string
	level   Level
	backend Backend
	format  *Format
}

// Option configures a Logger at construction.
type Option func(*Logger)

// WithFormat sets the line format. Recognized tokens are {time}, {level},
// {name} and {msg}; everything else is copied verbatim.
func WithFormat(format string) Option {
	return func(l *Logger) {
		l.format = CompileFormat(format)
	}
}

// New creates a Logger. A nil backend discards everything.
func New(name string, level Level, backend Backend, opts ...Option) *Logger {
	if backend == nil {
		backend = Discard
	}

	l := &Logger{
		name:    name,
		level:   level,
		backend: backend,
		format:  CompileFormat(DefaultFormat),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the minimum level this logger emits.
func (l *Logger) Level() Level {
	return l.level
}

// Enabled reports whether a record at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.level
}

// Named returns a logger sharing backend, level and format under a new name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: name, level: l.level, backend: l.backend, format: l.format}
}

// Log emits msg at level.
func (l *Logger) Log(level Level, msg string) {
	if !l.Enabled(level) {
		return
	}
	l.backend.Emit(Record{
		Time:    time.Now(),
		Name:    l.name,
		Level:   level,
		Message: msg,
	}, l.format)
}

// Tracef logs a formatted trace-level message.
func (l *Logger) Tracef(format string, args ...any) {
	l.Log(LevelTrace, fmt.Sprintf(format, args...))
}

// Debugf logs a formatted debug-level message.
func (l *Logger) Debugf(format string, args ...any) {
	l.Log(LevelDebug, fmt.Sprintf(format, args...))
}

// Infof logs a formatted info-level message.
func (l *Logger) Infof(format string, args ...any) {
	l.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning-level message.
func (l *Logger) Warnf(format string, args ...any) {
	l.Log(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error-level message.
func (l *Logger) Errorf(format string, args ...any) {
	l.Log(LevelError, fmt.Sprintf(format, args...))
}

type segmentKind int

const (
	segLiteral segmentKind = iota
	segTime
	segLevel
	segName
	segMsg
)

type segment struct {
	kind segmentKind
	text string
}

// Format is a compiled line format.
type Format struct {
	source   string
	segments []segment
}

var formatTokens = map[string]segmentKind{
	"{time}":  segTime,
	"{level}": segLevel,
	"{name}":  segName,
	"{msg}":   segMsg,
}

// CompileFormat parses a format string into segments. An empty string
// compiles DefaultFormat.
func CompileFormat(format string) *Format {
	if format == "" {
		format = DefaultFormat
	}

	f := &Format{source: format}
	rest := format
	for rest != "" {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			f.segments = append(f.segments, segment{kind: segLiteral, text: rest})
			break
		}

		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			f.segments = append(f.segments, segment{kind: segLiteral, text: rest})
			break
		}
		end += start + 1

		if kind, ok := formatTokens[rest[start:end]]; ok {
			if start > 0 {
				f.segments = append(f.segments, segment{kind: segLiteral, text: rest[:start]})
			}
			f.segments = append(f.segments, segment{kind: kind})
		} else {
			f.segments = append(f.segments, segment{kind: segLiteral, text: rest[:end]})
		}
		rest = rest[end:]
	}
	return f
}

// String returns the format source.
func (f *Format) String() string {
	return f.source
}

// Render formats rec. levelLabel decorates the level label; nil leaves it plain.
func (f *Format) Render(rec Record, levelLabel func(Level) string) string {
	var sb strings.Builder
	for _, seg := range f.segments {
		switch seg.kind {
		case segLiteral:
			sb.WriteString(seg.text)
		case segTime:
			sb.WriteString(rec.Time.Format("15:04:05"))
		case segLevel:
			if levelLabel != nil {
				sb.WriteString(levelLabel(rec.Level))
			} else {
				sb.WriteString(rec.Level.Label())
			}
		case segName:
			sb.WriteString(rec.Name)
		case segMsg:
			sb.WriteString(rec.Message)
		}
	}
	return sb.String()
}

type discardBackend struct{}

func (discardBackend) Emit(Record, *Format) {}

// Discard is a Backend that drops every record.
var Discard Backend = discardBackend{}

type teeBackend []Backend

func (t teeBackend) Emit(rec Record, format *Format) {
	for _, b := range t {
		b.Emit(rec, format)
	}
}

// Tee returns a Backend that forwards every record to each non-nil backend.
func Tee(backends ...Backend) Backend {
	var out teeBackend
	for _, b := range backends {
		if b != nil {
			out = append(out, b)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}
