package logger

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleBackend writes formatted records to a writer, one line per record.
// It filters by its own minimum level on top of each logger's level, and
// colors the level label when the writer is a terminal.
type ConsoleBackend struct {
	writer      io.Writer
	logLevel    Level
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleBackend creates a ConsoleBackend that writes to the provided io.Writer.
// If writer is nil, records are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); anything
// else defaults to info.
// Color output is automatically enabled when writing to a TTY.
func NewConsoleBackend(writer io.Writer, logLevel string) *ConsoleBackend {
	return &ConsoleBackend{
		writer:      writer,
		logLevel:    ParseLevel(logLevel),
		colorOutput: IsTerminal(writer),
	}
}

// SetColor forces color output on or off.
func (cb *ConsoleBackend) SetColor(enabled bool) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	cb.colorOutput = enabled
}

// IsTerminal reports whether w is a terminal that should get colors.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Emit writes rec if its level passes the backend filter.
func (cb *ConsoleBackend) Emit(rec Record, format *Format) {
	if cb.writer == nil || rec.Level < cb.logLevel {
		return
	}

	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	var line string
	if cb.colorOutput {
		line = format.Render(rec, coloredLabel)
	} else {
		line = format.Render(rec, nil)
	}

	io.WriteString(cb.writer, line+"\n")
}

// coloredLabel returns the level label wrapped in ANSI color codes.
func coloredLabel(level Level) string {
	label := level.Label()
	switch level {
	case LevelTrace:
		return color.New(color.FgHiBlack).Sprint(label)
	case LevelDebug:
		return color.New(color.FgCyan).Sprint(label)
	case LevelInfo:
		return color.New(color.FgBlue).Sprint(label)
	case LevelWarn:
		return color.New(color.FgYellow).Sprint(label)
	case LevelError:
		return color.New(color.FgRed).Sprint(label)
	default:
		return label
	}
}
