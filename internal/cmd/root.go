package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for multilint
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multilint [paths...]",
		Short: "Run Go code quality tools one after another",
		Long: `multilint runs a fixed sequence of Go formatters and checkers over
source paths and reports one outcome per tool: success, partial or failure.

Paths may be files, directories or glob patterns ("**" matches any depth).
Without paths, the current directory is checked with the configuration
discovered from .multilint.yaml or .multilint.toml in it or an ancestor.

Tools run in this order unless multilint.tool_order says otherwise:
  modfmt, goimports, gofumpt, gofmt, typecheck, vet, staticcheck

Examples:
  multilint
  multilint ./internal/... ./cmd
  multilint 'pkg/**/*.go' --tools gofmt,vet
  multilint --config ci/.multilint.yaml --report report.html
  multilint --dry-run

Exit code: 0 when every tool succeeded or partially succeeded, 1 otherwise`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
		RunE:          runCommand,
	}

	cmd.Flags().String("config", "", "Path to config file, or directory to search from (default: discovered)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (default: config or info)")
	cmd.Flags().String("log-dir", "", "Directory for JSON run logs")
	cmd.Flags().StringSlice("tools", nil, "Comma-separated tools to run instead of the configured order")
	cmd.Flags().String("report", "", "Write a Markdown report, or HTML when the file ends in .html")
	cmd.Flags().Bool("dry-run", false, "Validate the configuration and print the run plan without running tools")

	return cmd
}
