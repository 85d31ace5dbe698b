package runner

import (
	"sort"

	"github.com/gkze/multilint/internal/models"
)

// Factory builds a fresh runner from its base state.
type Factory func(Base) Runner

var registry = map[models.Tool]Factory{
	models.ToolModfmt:      NewModfmt,
	models.ToolGoimports:   NewGoimports,
	models.ToolGofumpt:     NewGofumpt,
	models.ToolGofmt:       NewGofmt,
	models.ToolTypecheck:   NewTypecheck,
	models.ToolVet:         NewVet,
	models.ToolStaticcheck: NewStaticcheck,
}

// Lookup returns the factory for tool.
func Lookup(tool models.Tool) (Factory, error) {
	factory, ok := registry[tool]
	if !ok {
		return nil, &UnsupportedToolError{Tool: tool}
	}
	return factory, nil
}

// Registered returns every tool with a runner, sorted by name.
func Registered() []models.Tool {
	tools := make([]models.Tool, 0, len(registry))
	for t := range registry {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i] < tools[j]
	})
	return tools
}
