package runner

import (
	"context"
	"path/filepath"

	"github.com/gkze/multilint/internal/models"
	"golang.org/x/mod/modfile"
)

// ModfmtRunner formats go.mod and go.work files the way the go command
// writes them.
//
// Options: check (bool), sort_blocks (bool, go.mod only).
type ModfmtRunner struct {
	Base
	fileReport
}

// NewModfmt creates a ModfmtRunner.
func NewModfmt(b Base) Runner {
	return &ModfmtRunner{Base: b}
}

// Run formats every go.mod and go.work file under the runner's paths.
func (r *ModfmtRunner) Run(ctx context.Context) (models.Result, error) {
	sortBlocks, err := r.opts.Bool("sort_blocks", false)
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}

	return r.runFormatter(ctx, &r.fileReport, moduleFiles, func(path string, src []byte) ([]byte, error) {
		if filepath.Base(path) == "go.work" {
			wf, err := modfile.ParseWork(path, src, nil)
			if err != nil {
				return nil, err
			}
			wf.Cleanup()
			return modfile.Format(wf.Syntax), nil
		}

		f, err := modfile.Parse(path, src, nil)
		if err != nil {
			return nil, err
		}
		if sortBlocks {
			f.SortBlocks()
		}
		f.Cleanup()
		return modfile.Format(f.Syntax), nil
	})
}
