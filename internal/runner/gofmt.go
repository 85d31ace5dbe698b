package runner

import (
	"context"
	"go/format"

	"github.com/gkze/multilint/internal/models"
)

// GofmtRunner formats Go source with go/format, the library behind gofmt.
//
// Options: check (bool).
type GofmtRunner struct {
	Base
	fileReport
}

// NewGofmt creates a GofmtRunner.
func NewGofmt(b Base) Runner {
	return &GofmtRunner{Base: b}
}

// Run formats every Go file under the runner's paths.
func (r *GofmtRunner) Run(ctx context.Context) (models.Result, error) {
	return r.runFormatter(ctx, &r.fileReport, goSources, func(_ string, src []byte) ([]byte, error) {
		return format.Source(src)
	})
}
