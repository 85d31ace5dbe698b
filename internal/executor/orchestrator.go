// Package executor runs the configured tools in order and aggregates their
// outcomes.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gkze/multilint/internal/config"
	"github.com/gkze/multilint/internal/logger"
	"github.com/gkze/multilint/internal/models"
	"github.com/gkze/multilint/internal/runner"
)

// Orchestrator resolves tools to runners and executes them one at a time.
// It holds only what New resolved; each run builds fresh runners, so one
// Orchestrator can run any number of times.
type Orchestrator struct {
	cfg      *config.Config
	paths    []string
	order    []models.Tool
	backend  logger.Backend
	level    *logger.Level
	lookPath func(string) (string, error)
	log      *logger.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithBackend sets where the orchestrator and its runners log.
func WithBackend(backend logger.Backend) Option {
	return func(o *Orchestrator) {
		o.backend = backend
	}
}

// WithLogLevel overrides the configured log level.
func WithLogLevel(level logger.Level) Option {
	return func(o *Orchestrator) {
		o.level = &level
	}
}

// WithLookPath replaces exec.LookPath for runners that need commands.
func WithLookPath(lookPath func(string) (string, error)) Option {
	return func(o *Orchestrator) {
		o.lookPath = lookPath
	}
}

// WithConfig uses an already loaded configuration instead of loading one.
func WithConfig(cfg *config.Config) Option {
	return func(o *Orchestrator) {
		o.cfg = cfg
	}
}

// New creates an Orchestrator. configPath may name a file, a directory to
// start discovery from, or be empty to discover from the working directory.
//
// Source paths come from srcPaths when non-empty, else from the config's
// src_paths, else the current directory. A malformed config is an error.
func New(srcPaths []string, configPath string, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{backend: logger.Discard}
	for _, opt := range opts {
		opt(o)
	}

	if o.cfg == nil {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		o.cfg = cfg
	}

	level := logger.ParseLevel(o.cfg.Settings.LogLevel)
	if o.level != nil {
		level = *o.level
	}
	o.level = &level
	o.log = logger.New("multilint", level, o.backend, logger.WithFormat(o.cfg.Settings.LogFormat))

	o.paths = o.resolvePaths(srcPaths)

	order, err := o.cfg.Order()
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		order = models.DefaultOrder()
	}
	o.order = order

	return o, nil
}

// Config returns the configuration in use.
func (o *Orchestrator) Config() *config.Config {
	return o.cfg
}

// Paths returns the unexpanded source paths.
func (o *Orchestrator) Paths() []string {
	return append([]string(nil), o.paths...)
}

// Order returns the default tool order for RunAllTools.
func (o *Orchestrator) Order() []models.Tool {
	return append([]models.Tool(nil), o.order...)
}

// RunTool runs a single tool and returns its outcome.
//
// Failures inside the tool are logged and reported as ResultFailure with a
// nil error. An unsupported identifier or a missing requirement returns an
// error alongside ResultFailure.
func (o *Orchestrator) RunTool(ctx context.Context, tool models.Tool) (models.Result, error) {
	release, err := o.acquire()
	if err != nil {
		return models.ResultFailure, err
	}
	defer release()

	paths, err := expandPaths(o.paths)
	if err != nil {
		return models.ResultFailure, err
	}

	outcome, err := o.runTool(ctx, tool, paths)
	return outcome.Result, err
}

// RunAllTools runs each tool in order, or the configured order when none is
// given. Every tool is attempted whatever the outcome of the ones before it;
// unsupported tools and tool failures are recorded as ResultFailure. A
// missing requirement is recorded the same way and the first one is
// returned with the complete aggregate.
func (o *Orchestrator) RunAllTools(ctx context.Context, order ...models.Tool) (*models.Results, error) {
	if len(order) == 0 {
		order = o.Order()
	}

	release, err := o.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	paths, err := expandPaths(o.paths)
	if err != nil {
		return nil, err
	}
	o.log.Debugf("source paths: %v", paths)

	results := models.NewResults()
	var missing error
	for _, tool := range order {
		outcome, err := o.runTool(ctx, tool, paths)
		results.Add(outcome)
		if missing == nil && errors.Is(err, runner.ErrToolNotInstalled) {
			missing = err
		}
	}

	return results, missing
}

// runTool runs one tool over paths, or over its own src_paths override.
// The returned error is non-nil only for unsupported tools and missing
// requirements; the outcome is always valid.
func (o *Orchestrator) runTool(ctx context.Context, tool models.Tool, paths []string) (models.Outcome, error) {
	start := time.Now()
	outcome := models.Outcome{Tool: tool, Result: models.ResultFailure}
	finish := func(err error) models.Outcome {
		outcome.Err = err
		outcome.Duration = time.Since(start)
		return outcome
	}

	factory, err := runner.Lookup(tool)
	if err != nil {
		o.log.Errorf("%v", err)
		return finish(err), err
	}

	opts := o.cfg.Tool(tool.String())
	override, ok, err := opts.PathOverride()
	if err != nil {
		err = &runner.ToolExecutionError{Tool: tool, Err: err}
		o.log.Errorf("%v", err)
		return finish(err), nil
	}
	if ok {
		if paths, err = expandPaths(o.relativeToConfig(override)); err != nil {
			err = &runner.ToolExecutionError{Tool: tool, Err: err}
			o.log.Errorf("%v", err)
			return finish(err), nil
		}
	}

	if len(paths) == 0 {
		o.log.Warnf("%s: no source paths matched, nothing to do", tool)
		outcome.Result = models.ResultPartial
		return finish(nil), nil
	}

	baseOpts := []runner.BaseOption{
		runner.WithBackend(o.backend),
		runner.WithLogFormat(o.cfg.Settings.LogFormat),
	}
	if o.lookPath != nil {
		baseOpts = append(baseOpts, runner.WithLookPath(o.lookPath))
	}
	r := factory(runner.NewBase(tool, paths, opts, baseOpts...))

	o.log.Infof("Running %s...", tool)
	result, err := r.Run(ctx)
	if reporter, ok := r.(runner.FileReporter); ok {
		outcome.Files = reporter.FileResults()
	}

	if err != nil {
		o.log.Errorf("%v", err)
		if errors.Is(err, runner.ErrToolNotInstalled) {
			return finish(err), err
		}
		return finish(err), nil
	}
	if !result.Valid() {
		err = &runner.ToolExecutionError{Tool: tool, Err: fmt.Errorf("invalid result %q", result)}
		o.log.Errorf("%v", err)
		return finish(err), nil
	}

	outcome.Result = result
	o.log.Infof("%s exited with %s", tool, result)
	return finish(nil), nil
}
