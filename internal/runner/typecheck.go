package runner

import (
	"context"
	"go/types"
	"strings"

	"github.com/gkze/multilint/internal/logger"
	"github.com/gkze/multilint/internal/models"
	"golang.org/x/tools/go/packages"
)

const typecheckMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedTypesSizes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// TypecheckRunner type-checks packages with go/types, loaded through
// go/packages.
//
// Options: tests (bool), build_tags ([]string), soft_errors_as_warnings
// (bool), warn ([]string), fail_on_warnings (bool).
type TypecheckRunner struct {
	Base
	fileReport
}

// NewTypecheck creates a TypecheckRunner.
func NewTypecheck(b Base) Runner {
	return &TypecheckRunner{Base: b}
}

// Run loads and type-checks every package under the runner's paths.
func (r *TypecheckRunner) Run(ctx context.Context) (models.Result, error) {
	r.files = nil

	settings, err := r.loadSettings()
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}
	policy, err := loadSeverityPolicy(r.opts)
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}
	softWarn, err := r.opts.Bool("soft_errors_as_warnings", false)
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}
	if softWarn {
		policy.warn = append(policy.warn, "soft")
	}

	pkgs, err := r.loadPackages(ctx, typecheckMode, settings)
	if err != nil {
		return models.ResultFailure, err
	}

	log := r.Logger(logger.LevelInfo)
	log.Debugf("type-checking %d packages", len(pkgs))

	findings := packageErrorFindings(pkgs, true)
	for _, pkg := range pkgs {
		for _, e := range pkg.TypeErrors {
			findings = append(findings, typeErrorFinding(e))
		}
	}

	files, result := policy.report(packageFiles(pkgs), findings, r.Capture(logger.LevelError))
	r.files = files
	return result, nil
}

func typeErrorFinding(e types.Error) finding {
	f := finding{Source: "type", Message: e.Msg}
	if e.Soft {
		f.Source = "soft"
	}
	if e.Fset != nil && e.Pos.IsValid() {
		pos := e.Fset.Position(e.Pos)
		f.File, f.Line, f.Column = pos.Filename, pos.Line, pos.Column
	}
	if f.File == "" {
		if file, line, col, ok := splitPos(strings.SplitN(e.Error(), ": ", 2)[0]); ok {
			f.File, f.Line, f.Column = file, line, col
		}
	}
	return f
}
