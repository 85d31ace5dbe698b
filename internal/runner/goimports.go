package runner

import (
	"context"

	"github.com/gkze/multilint/internal/models"
	"golang.org/x/tools/imports"
)

// GoimportsRunner removes unused imports, adds missing ones and groups them,
// using golang.org/x/tools/imports.
//
// Options: check (bool), local_prefix (string), format_only (bool),
// tab_width (int), all_errors (bool).
type GoimportsRunner struct {
	Base
	fileReport
}

// NewGoimports creates a GoimportsRunner.
func NewGoimports(b Base) Runner {
	return &GoimportsRunner{Base: b}
}

// Run processes every Go file under the runner's paths.
func (r *GoimportsRunner) Run(ctx context.Context) (models.Result, error) {
	opts, localPrefix, err := r.importsOptions()
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}

	// LocalPrefix is package state in x/tools/imports; runs are sequential.
	prevPrefix := imports.LocalPrefix
	imports.LocalPrefix = localPrefix
	defer func() {
		imports.LocalPrefix = prevPrefix
	}()

	return r.runFormatter(ctx, &r.fileReport, goSources, func(path string, src []byte) ([]byte, error) {
		return imports.Process(path, src, opts)
	})
}

func (r *GoimportsRunner) importsOptions() (*imports.Options, string, error) {
	localPrefix, err := r.opts.String("local_prefix", "")
	if err != nil {
		return nil, "", err
	}
	formatOnly, err := r.opts.Bool("format_only", false)
	if err != nil {
		return nil, "", err
	}
	allErrors, err := r.opts.Bool("all_errors", false)
	if err != nil {
		return nil, "", err
	}
	tabWidth, err := r.opts.Int("tab_width", 8)
	if err != nil {
		return nil, "", err
	}

	return &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   tabWidth,
		FormatOnly: formatOnly,
		AllErrors:  allErrors,
	}, localPrefix, nil
}
