package models

import (
	"fmt"
	"time"
)

// Result is the normalized outcome of one tool run.
type Result string

// Run outcome constants
const (
	ResultSuccess Result = "success" // Tool ran and changed or found something actionable, or a check found nothing
	ResultPartial Result = "partial" // Tool ran cleanly but had nothing to do, or found warnings only
	ResultFailure Result = "failure" // Tool reported findings or could not process its input
)

// Valid reports whether r is one of the three outcomes.
func (r Result) Valid() bool {
	switch r {
	case ResultSuccess, ResultPartial, ResultFailure:
		return true
	default:
		return false
	}
}

func (r Result) String() string {
	return string(r)
}

// MarshalText implements encoding.TextMarshaler.
func (r Result) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid result %q", string(r))
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Result) UnmarshalText(text []byte) error {
	v := Result(text)
	if !v.Valid() {
		return fmt.Errorf("invalid result %q", string(text))
	}
	*r = v
	return nil
}

// Fold combines outcomes: any failure makes the whole a failure, otherwise any
// partial makes it partial, otherwise success. Folding nothing yields success.
func Fold(results ...Result) Result {
	folded := ResultSuccess
	for _, r := range results {
		switch r {
		case ResultFailure:
			return ResultFailure
		case ResultPartial:
			folded = ResultPartial
		}
	}
	return folded
}

// FileResult is the outcome of a tool on a single file.
type FileResult struct {
	Path    string // File the outcome refers to
	Result  Result // Per-file outcome
	Changed bool   // Whether a fixing tool rewrote (or would rewrite) the file
	Message string // Error or finding summary, empty on clean files
}

// FoldFiles folds per-file outcomes with the same rule as Fold.
func FoldFiles(files []FileResult) Result {
	results := make([]Result, len(files))
	for i, f := range files {
		results[i] = f.Result
	}
	return Fold(results...)
}

// Outcome is the recorded result of one tool within a run.
type Outcome struct {
	Tool     Tool          // Tool that ran
	Result   Result        // Aggregate outcome
	Files    []FileResult  // Per-file detail, when the tool reports it
	Err      error         // Error converted into a failure outcome, if any
	Duration time.Duration // Time taken by the tool
}

// Results maps tools to outcomes, ordered by execution.
type Results struct {
	order    []Tool
	outcomes map[Tool]Outcome
}

// NewResults creates an empty aggregate.
func NewResults() *Results {
	return &Results{outcomes: make(map[Tool]Outcome)}
}

// Add records an outcome. Recording a tool twice keeps its first position
// and replaces the outcome.
func (r *Results) Add(o Outcome) {
	if _, exists := r.outcomes[o.Tool]; !exists {
		r.order = append(r.order, o.Tool)
	}
	r.outcomes[o.Tool] = o
}

// Get returns the result recorded for tool.
func (r *Results) Get(tool Tool) (Result, bool) {
	o, ok := r.outcomes[tool]
	return o.Result, ok
}

// Outcome returns the full outcome recorded for tool.
func (r *Results) Outcome(tool Tool) (Outcome, bool) {
	o, ok := r.outcomes[tool]
	return o, ok
}

// Tools returns the tools in execution order.
func (r *Results) Tools() []Tool {
	return append([]Tool(nil), r.order...)
}

// Outcomes returns all outcomes in execution order.
func (r *Results) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.outcomes[t])
	}
	return out
}

// Len returns the number of recorded tools.
func (r *Results) Len() int {
	return len(r.order)
}

// HasFailure reports whether any recorded outcome is a failure.
func (r *Results) HasFailure() bool {
	for _, o := range r.outcomes {
		if o.Result == ResultFailure {
			return true
		}
	}
	return false
}
