// Package runner adapts third-party Go code quality tools to one contract.
//
// Each adapter wraps a single tool's library entry point and maps its native
// result onto the tri-state models.Result. Adapters are created per run from
// a Base holding the tool identity, the resolved source paths and the tool's
// config section; none of these change after construction.
package runner

import (
	"context"
	"os/exec"

	"github.com/gkze/multilint/internal/config"
	"github.com/gkze/multilint/internal/logger"
	"github.com/gkze/multilint/internal/models"
)

// Runner executes one tool once.
type Runner interface {
	Tool() models.Tool
	Run(ctx context.Context) (models.Result, error)
}

// FileReporter is implemented by runners that work file by file. The
// returned slice holds every per-file outcome of the last Run.
type FileReporter interface {
	FileResults() []models.FileResult
}

// Base is the common state of every runner.
type Base struct {
	tool      models.Tool
	paths     []string
	opts      config.Options
	backend   logger.Backend
	logFormat string
	lookPath  func(string) (string, error)
}

// BaseOption configures optional Base dependencies.
type BaseOption func(*Base)

// WithBackend sets where runner loggers send their records.
func WithBackend(backend logger.Backend) BaseOption {
	return func(b *Base) {
		b.backend = backend
	}
}

// WithLogFormat sets the line format of runner loggers.
func WithLogFormat(format string) BaseOption {
	return func(b *Base) {
		b.logFormat = format
	}
}

// WithLookPath replaces exec.LookPath when checking for required commands.
func WithLookPath(lookPath func(string) (string, error)) BaseOption {
	return func(b *Base) {
		b.lookPath = lookPath
	}
}

// NewBase creates the shared runner state. paths is used as given; an
// empty set leaves the runner nothing to process.
func NewBase(tool models.Tool, paths []string, opts config.Options, options ...BaseOption) Base {
	b := Base{
		tool:     tool,
		paths:    append([]string(nil), paths...),
		opts:     opts,
		backend:  logger.Discard,
		lookPath: exec.LookPath,
	}
	for _, opt := range options {
		opt(&b)
	}
	return b
}

// Tool returns the runner's tool identifier.
func (b Base) Tool() models.Tool {
	return b.tool
}

// Paths returns a copy of the resolved source paths.
func (b Base) Paths() []string {
	return append([]string(nil), b.paths...)
}

// Options returns the tool's config section.
func (b Base) Options() config.Options {
	return b.opts
}

// LoggerName is the name of loggers created for tool.
func LoggerName(tool models.Tool) string {
	return "tool." + tool.String()
}

// Logger creates a plain logger named after the runner's tool.
func (b Base) Logger(level logger.Level) *logger.Logger {
	return logger.New(LoggerName(b.tool), level, b.backend, logger.WithFormat(b.logFormat))
}

// Capture creates a capture logger named after the runner's tool. Text
// written to it is logged at level.
func (b Base) Capture(level logger.Level) *logger.Capture {
	return logger.NewCapture(LoggerName(b.tool), level, b.backend, logger.WithFormat(b.logFormat))
}

// requireCommand returns a ToolNotInstalledError when name is not on PATH.
func (b Base) requireCommand(name string) error {
	if _, err := b.lookPath(name); err != nil {
		return &ToolNotInstalledError{Tool: b.tool, Requirement: name, Err: err}
	}
	return nil
}

// execError wraps err as a ToolExecutionError for this runner.
func (b Base) execError(err error) error {
	return &ToolExecutionError{Tool: b.tool, Err: err}
}

// fileReport stores per-file outcomes for FileReporter implementations.
type fileReport struct {
	files []models.FileResult
}

// FileResults returns a copy of the per-file outcomes of the last run.
func (r *fileReport) FileResults() []models.FileResult {
	return append([]models.FileResult(nil), r.files...)
}
