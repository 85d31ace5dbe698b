package runner

import (
	"context"
	"sort"
	"strings"

	"github.com/gkze/multilint/internal/config"
	"github.com/gkze/multilint/internal/models"
	"golang.org/x/tools/go/analysis"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

// defaultChecks mirrors staticcheck's own defaults.
var defaultChecks = []string{"all", "-ST1000", "-ST1003", "-ST1016", "-ST1020", "-ST1021", "-ST1022", "-ST1023"}

// StaticcheckRunner runs the staticcheck, simple and stylecheck analyzer
// suites in process.
//
// Options: checks ([]string), tests (bool), build_tags ([]string),
// warn ([]string), fail_on_warnings (bool).
type StaticcheckRunner struct {
	Base
	fileReport
}

// NewStaticcheck creates a StaticcheckRunner.
func NewStaticcheck(b Base) Runner {
	return &StaticcheckRunner{Base: b}
}

// Run analyzes every package under the runner's paths.
func (r *StaticcheckRunner) Run(ctx context.Context) (models.Result, error) {
	r.files = nil

	checks, ok, err := r.opts.Strings("checks")
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}
	if !ok {
		checks = defaultChecks
	}

	analyzers, err := selectStaticcheckAnalyzers(checks)
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}
	return runAnalyzers(ctx, r.Base, &r.fileReport, analyzers)
}

func staticcheckSuites() []*lint.Analyzer {
	var all []*lint.Analyzer
	all = append(all, staticcheck.Analyzers...)
	all = append(all, simple.Analyzers...)
	all = append(all, stylecheck.Analyzers...)
	return all
}

// selectStaticcheckAnalyzers resolves a staticcheck "checks" list. Entries
// are applied in order: "all" or "*" selects everything, a trailing "*"
// matches a prefix such as "SA1*", and a leading "-" deselects.
func selectStaticcheckAnalyzers(checks []string) ([]*analysis.Analyzer, error) {
	suites := staticcheckSuites()
	selected := make(map[string]bool)

	for _, check := range checks {
		check = strings.TrimSpace(check)
		enable := true
		if strings.HasPrefix(check, "-") {
			enable = false
			check = check[1:]
		}

		matched := false
		for _, a := range suites {
			if matchCheck(check, a.Analyzer.Name) {
				matched = true
				if enable {
					selected[a.Analyzer.Name] = true
				} else {
					delete(selected, a.Analyzer.Name)
				}
			}
		}
		if !matched {
			return nil, &config.OptionError{Key: "checks", Value: check, Reason: "matches no check"}
		}
	}

	analyzers := make([]*analysis.Analyzer, 0, len(selected))
	for _, a := range suites {
		if selected[a.Analyzer.Name] {
			analyzers = append(analyzers, a.Analyzer)
		}
	}
	sort.Slice(analyzers, func(i, j int) bool {
		return analyzers[i].Name < analyzers[j].Name
	})
	return analyzers, nil
}

func matchCheck(pattern, name string) bool {
	switch {
	case pattern == "all" || pattern == "*":
		return true
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	default:
		return strings.EqualFold(pattern, name)
	}
}
