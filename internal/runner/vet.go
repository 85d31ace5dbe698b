package runner

import (
	"context"
	"fmt"
	"sort"

	"github.com/gkze/multilint/internal/config"
	"github.com/gkze/multilint/internal/logger"
	"github.com/gkze/multilint/internal/models"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/defers"
	"golang.org/x/tools/go/analysis/passes/directive"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/slog"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/stringintconv"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/testinggoroutine"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/timeformat"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unsafeptr"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"golang.org/x/tools/go/packages"
)

// vetSuite is the analyzer set go vet runs by default.
var vetSuite = []*analysis.Analyzer{
	assign.Analyzer,
	atomic.Analyzer,
	bools.Analyzer,
	buildtag.Analyzer,
	composite.Analyzer,
	copylock.Analyzer,
	defers.Analyzer,
	directive.Analyzer,
	errorsas.Analyzer,
	httpresponse.Analyzer,
	ifaceassert.Analyzer,
	loopclosure.Analyzer,
	lostcancel.Analyzer,
	nilfunc.Analyzer,
	printf.Analyzer,
	shift.Analyzer,
	sigchanyzer.Analyzer,
	slog.Analyzer,
	stdmethods.Analyzer,
	stringintconv.Analyzer,
	structtag.Analyzer,
	testinggoroutine.Analyzer,
	tests.Analyzer,
	timeformat.Analyzer,
	unmarshal.Analyzer,
	unreachable.Analyzer,
	unsafeptr.Analyzer,
	unusedresult.Analyzer,
}

// vetExtras are analyzers that only run when enabled.
var vetExtras = []*analysis.Analyzer{
	nilness.Analyzer,
	shadow.Analyzer,
}

// VetRunner runs the go vet analyzers in process through the analysis
// checker.
//
// Options: enable ([]string), disable ([]string), tests (bool),
// build_tags ([]string), warn ([]string), fail_on_warnings (bool).
type VetRunner struct {
	Base
	fileReport
}

// NewVet creates a VetRunner.
func NewVet(b Base) Runner {
	return &VetRunner{Base: b}
}

// Run analyzes every package under the runner's paths.
func (r *VetRunner) Run(ctx context.Context) (models.Result, error) {
	r.files = nil

	analyzers, err := selectVetAnalyzers(r.opts)
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}
	return runAnalyzers(ctx, r.Base, &r.fileReport, analyzers)
}

// selectVetAnalyzers applies the enable and disable options to the
// default suite.
func selectVetAnalyzers(opts config.Options) ([]*analysis.Analyzer, error) {
	known := make(map[string]*analysis.Analyzer)
	for _, a := range vetSuite {
		known[a.Name] = a
	}
	for _, a := range vetExtras {
		known[a.Name] = a
	}

	selected := make(map[string]bool)
	for _, a := range vetSuite {
		selected[a.Name] = true
	}

	enable, _, err := opts.Strings("enable")
	if err != nil {
		return nil, err
	}
	disable, _, err := opts.Strings("disable")
	if err != nil {
		return nil, err
	}
	for _, name := range enable {
		if _, ok := known[name]; !ok {
			return nil, &config.OptionError{Key: "enable", Value: name, Reason: "unknown analyzer"}
		}
		selected[name] = true
	}
	for _, name := range disable {
		if _, ok := known[name]; !ok {
			return nil, &config.OptionError{Key: "disable", Value: name, Reason: "unknown analyzer"}
		}
		delete(selected, name)
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	analyzers := make([]*analysis.Analyzer, 0, len(names))
	for _, name := range names {
		analyzers = append(analyzers, known[name])
	}
	return analyzers, nil
}

// runAnalyzers is the Run body shared by the analysis based checkers.
func runAnalyzers(ctx context.Context, b Base, report *fileReport, analyzers []*analysis.Analyzer) (models.Result, error) {
	settings, err := b.loadSettings()
	if err != nil {
		return models.ResultFailure, b.execError(err)
	}
	policy, err := loadSeverityPolicy(b.opts)
	if err != nil {
		return models.ResultFailure, b.execError(err)
	}

	pkgs, err := b.loadPackages(ctx, packages.LoadAllSyntax, settings)
	if err != nil {
		return models.ResultFailure, err
	}

	log := b.Logger(logger.LevelInfo)
	log.Debugf("running %d analyzers over %d packages", len(analyzers), len(pkgs))

	// Analyzers cannot run on packages that failed to load.
	findings := packageErrorFindings(pkgs, false)
	if len(findings) > 0 {
		files, result := policy.report(packageFiles(pkgs), findings, b.Capture(logger.LevelError))
		report.files = files
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return models.ResultFailure, b.execError(err)
	}

	graph, err := checker.Analyze(analyzers, pkgs, &checker.Options{Sequential: true})
	if err != nil {
		return models.ResultFailure, b.execError(fmt.Errorf("analysis: %w", err))
	}

	for _, act := range graph.Roots {
		if act.Err != nil {
			findings = append(findings, finding{
				File:    act.Package.PkgPath,
				Source:  act.Analyzer.Name,
				Message: act.Err.Error(),
			})
			continue
		}
		for _, d := range act.Diagnostics {
			pos := act.Package.Fset.Position(d.Pos)
			findings = append(findings, finding{
				File:    pos.Filename,
				Line:    pos.Line,
				Column:  pos.Column,
				Source:  act.Analyzer.Name,
				Message: d.Message,
			})
		}
	}

	files, result := policy.report(packageFiles(pkgs), findings, b.Capture(logger.LevelError))
	report.files = files
	return result, nil
}
