package runner

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gkze/multilint/internal/config"
	"github.com/gkze/multilint/internal/logger"
	"github.com/gkze/multilint/internal/models"
)

// finding is one diagnostic reported by a checking tool.
type finding struct {
	File    string // Source file, or package path when there is no position
	Line    int
	Column  int
	Source  string // Analyzer, check or error kind that produced it
	Message string
}

func (f finding) String() string {
	var sb strings.Builder
	sb.WriteString(f.File)
	if f.Line > 0 {
		fmt.Fprintf(&sb, ":%d", f.Line)
		if f.Column > 0 {
			fmt.Fprintf(&sb, ":%d", f.Column)
		}
	}
	fmt.Fprintf(&sb, ": %s", f.Message)
	if f.Source != "" {
		fmt.Fprintf(&sb, " (%s)", f.Source)
	}
	return sb.String()
}

// severityPolicy decides how checker findings map onto outcomes.
//
// Findings whose source matches a warn pattern are warnings; all others are
// errors. A file with errors fails. A file with only warnings is a partial
// success, or a failure when fail_on_warnings is set.
type severityPolicy struct {
	warn           []string
	failOnWarnings bool
}

func loadSeverityPolicy(opts config.Options) (severityPolicy, error) {
	warn, _, err := opts.Strings("warn")
	if err != nil {
		return severityPolicy{}, err
	}
	failOnWarnings, err := opts.Bool("fail_on_warnings", false)
	if err != nil {
		return severityPolicy{}, err
	}
	for _, pattern := range warn {
		if _, err := path.Match(pattern, ""); err != nil {
			return severityPolicy{}, &config.OptionError{Key: "warn", Value: pattern, Reason: "invalid pattern"}
		}
	}
	return severityPolicy{warn: warn, failOnWarnings: failOnWarnings}, nil
}

// isWarning reports whether findings from source count as warnings.
func (p severityPolicy) isWarning(source string) bool {
	for _, pattern := range p.warn {
		if ok, _ := path.Match(pattern, source); ok {
			return true
		}
		if strings.EqualFold(pattern, source) {
			return true
		}
	}
	return false
}

// fileResults groups findings by file. Every file in files gets a result,
// clean ones included; findings in files outside that list get one too.
func (p severityPolicy) fileResults(files []string, findings []finding) []models.FileResult {
	type tally struct {
		errors   int
		warnings int
		first    string
	}

	order := make([]string, 0, len(files))
	tallies := make(map[string]*tally)
	track := func(file string) *tally {
		t, ok := tallies[file]
		if !ok {
			t = &tally{}
			tallies[file] = t
			order = append(order, file)
		}
		return t
	}

	for _, f := range files {
		track(f)
	}
	for _, f := range findings {
		t := track(f.File)
		if p.isWarning(f.Source) {
			t.warnings++
		} else {
			t.errors++
		}
		if t.first == "" {
			t.first = f.String()
		}
	}

	results := make([]models.FileResult, 0, len(order))
	for _, file := range order {
		t := tallies[file]
		fr := models.FileResult{Path: file, Result: models.ResultSuccess}
		switch {
		case t.errors > 0:
			fr.Result = models.ResultFailure
		case t.warnings > 0 && p.failOnWarnings:
			fr.Result = models.ResultFailure
		case t.warnings > 0:
			fr.Result = models.ResultPartial
		}
		if total := t.errors + t.warnings; total > 0 {
			fr.Message = t.first
			if total > 1 {
				fr.Message += fmt.Sprintf(" (+%d more)", total-1)
			}
		}
		results = append(results, fr)
	}
	return results
}

// report logs every finding through capture and returns the per-file
// results and their fold.
func (p severityPolicy) report(files []string, findings []finding, capture *logger.Capture) ([]models.FileResult, models.Result) {
	findings = dedupeFindings(findings)
	for _, f := range findings {
		capture.WriteString(f.String())
	}

	results := p.fileResults(files, findings)
	return results, models.FoldFiles(results)
}

// dedupeFindings drops repeats, which appear when a package is analyzed
// both alone and with its tests, and sorts by position.
func dedupeFindings(findings []finding) []finding {
	seen := make(map[finding]bool, len(findings))
	out := make([]finding, 0, len(findings))
	for _, f := range findings {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}
