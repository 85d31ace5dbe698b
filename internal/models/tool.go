package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTool indicates a tool identifier outside the supported set.
var ErrUnknownTool = errors.New("unknown tool")

// Tool identifies a supported code quality tool, or multilint itself.
type Tool string

// Supported tool identifiers
const (
	ToolModfmt      Tool = "modfmt"      // go.mod formatter (golang.org/x/mod)
	ToolGoimports   Tool = "goimports"   // import cleanup (golang.org/x/tools/imports)
	ToolGofumpt     Tool = "gofumpt"     // stricter gofmt (mvdan.cc/gofumpt)
	ToolGofmt       Tool = "gofmt"       // canonical formatter (go/format)
	ToolTypecheck   Tool = "typecheck"   // type checker (go/packages + go/types)
	ToolVet         Tool = "vet"         // go vet analyzer suite
	ToolStaticcheck Tool = "staticcheck" // staticcheck, simple and stylecheck
	ToolMultilint   Tool = "multilint"   // the orchestrator itself, never runnable
)

var allTools = []Tool{
	ToolGofmt,
	ToolGofumpt,
	ToolGoimports,
	ToolModfmt,
	ToolMultilint,
	ToolStaticcheck,
	ToolTypecheck,
	ToolVet,
}

// AllTools returns every known identifier, including ToolMultilint.
func AllTools() []Tool {
	return append([]Tool(nil), allTools...)
}

// DefaultOrder returns the built-in execution order: fixers first, then checkers.
// A new slice is returned on every call.
func DefaultOrder() []Tool {
	return []Tool{
		ToolModfmt,
		ToolGoimports,
		ToolGofumpt,
		ToolGofmt,
		ToolTypecheck,
		ToolVet,
		ToolStaticcheck,
	}
}

// ParseTool converts a lowercase tool name into a Tool.
func ParseTool(name string) (Tool, error) {
	normalized := Tool(strings.ToLower(strings.TrimSpace(name)))
	for _, t := range allTools {
		if t == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// ParseTools converts a list of names, failing on the first unknown one.
func ParseTools(names []string) ([]Tool, error) {
	tools := make([]Tool, 0, len(names))
	for _, name := range names {
		t, err := ParseTool(name)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// String returns the identifier as used in config sections and on the CLI.
func (t Tool) String() string {
	return string(t)
}
