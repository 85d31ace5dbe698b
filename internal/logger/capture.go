package logger

import (
	"io"
	"strings"
)

// Capture is a Logger that can also be handed to code expecting an
// io.Writer. Every Write call becomes exactly one log record at the capture
// level, so tool output meant for stdout or stderr lands in the logs.
type Capture struct {
	*Logger
	level Level
}

var (
	_ io.Writer       = (*Capture)(nil)
	_ io.StringWriter = (*Capture)(nil)
)

// NewCapture creates a Capture named name that records writes at level.
// level is also the minimum level of the embedded Logger.
func NewCapture(name string, level Level, backend Backend, opts ...Option) *Capture {
	return &Capture{
		Logger: New(name, level, backend, opts...),
		level:  level,
	}
}

// Write logs p as a single record. A trailing newline is dropped; empty or
// whitespace-only input produces no record. It always reports len(p) bytes
// written and never fails.
func (c *Capture) Write(p []byte) (int, error) {
	c.write(string(p))
	return len(p), nil
}

// WriteString is Write for strings.
func (c *Capture) WriteString(s string) (int, error) {
	c.write(s)
	return len(s), nil
}

func (c *Capture) write(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	c.Logger.Log(c.level, strings.TrimRight(msg, "\r\n"))
}
