package runner

import (
	"errors"
	"fmt"

	"github.com/gkze/multilint/internal/models"
)

var (
	// ErrToolNotInstalled indicates a tool cannot run in this environment.
	ErrToolNotInstalled = errors.New("tool not installed")
	// ErrUnsupportedTool indicates an identifier without a registered runner.
	ErrUnsupportedTool = errors.New("unsupported tool")
)

// ToolNotInstalledError reports a missing requirement, such as the go
// command that package-loading tools shell out to. It means the environment
// is misconfigured, not that the code has problems.
type ToolNotInstalledError struct {
	Tool        models.Tool // Tool that could not run
	Requirement string      // What is missing
	Err         error       // Underlying lookup error (optional)
}

// Error implements the error interface for ToolNotInstalledError.
func (e *ToolNotInstalledError) Error() string {
	msg := fmt.Sprintf("%s: %s: %q is not available", e.Tool, ErrToolNotInstalled, e.Requirement)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ToolNotInstalledError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrToolNotInstalled) match.
func (e *ToolNotInstalledError) Is(target error) bool {
	return target == ErrToolNotInstalled
}

// ToolExecutionError reports a tool that is installed but failed internally
// or was misconfigured. The orchestrator records it as a failure outcome.
type ToolExecutionError struct {
	Tool models.Tool
	Err  error
}

// Error implements the error interface for ToolExecutionError.
func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

// Unwrap returns the underlying error.
func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// UnsupportedToolError reports an identifier with no registered runner.
type UnsupportedToolError struct {
	Tool models.Tool
}

// Error implements the error interface for UnsupportedToolError.
func (e *UnsupportedToolError) Error() string {
	return fmt.Sprintf("%s: %q has no runner", ErrUnsupportedTool, e.Tool)
}

// Is makes errors.Is(err, ErrUnsupportedTool) match.
func (e *UnsupportedToolError) Is(target error) bool {
	return target == ErrUnsupportedTool
}
