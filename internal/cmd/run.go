package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gkze/multilint/internal/config"
	"github.com/gkze/multilint/internal/executor"
	"github.com/gkze/multilint/internal/logger"
	"github.com/gkze/multilint/internal/models"
	"github.com/gkze/multilint/internal/report"
	"github.com/spf13/cobra"
)

// ErrToolsFailed is returned when at least one tool reported a failure.
var ErrToolsFailed = errors.New("one or more tools failed")

func runCommand(cmd *cobra.Command, args []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	if !cmd.Flags().Changed("config") && env.ConfigPath != "" {
		configPath = env.ConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override environment, which overrides the config file
	logLevelFlag, _ := cmd.Flags().GetString("log-level")
	logDirFlag, _ := cmd.Flags().GetString("log-dir")

	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		logLevelPtr = &logLevelFlag
	} else if env.LogLevel != "" {
		logLevelPtr = &env.LogLevel
	}

	var logDirPtr *string
	if cmd.Flags().Changed("log-dir") {
		logDirPtr = &logDirFlag
	} else if env.LogDir != "" {
		logDirPtr = &env.LogDir
	}

	cfg.MergeWithFlags(logLevelPtr, logDirPtr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	toolNames, _ := cmd.Flags().GetStringSlice("tools")
	tools, err := models.ParseTools(toolNames)
	if err != nil {
		return fmt.Errorf("invalid --tools: %w", err)
	}

	colorOutput := logger.IsTerminal(cmd.OutOrStdout()) && !env.ColorDisabled()

	console := logger.NewConsoleBackend(cmd.ErrOrStderr(), cfg.Settings.LogLevel)
	if env.ColorDisabled() {
		console.SetColor(false)
	}
	var backend logger.Backend = console

	if cfg.Settings.LogDir != "" {
		fileBackend, err := logger.NewFileBackend(cfg.Settings.LogDir, cfg.Settings.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer fileBackend.Close()
		backend = logger.Tee(console, fileBackend)
	}

	orch, err := executor.New(args, "",
		executor.WithConfig(cfg),
		executor.WithBackend(backend),
		executor.WithLogLevel(logger.ParseLevel(cfg.Settings.LogLevel)),
	)
	if err != nil {
		return err
	}
	if len(tools) == 0 {
		tools = orch.Order()
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		printPlan(cmd.OutOrStdout(), cfg, orch.Paths(), tools)
		return nil
	}

	results, runErr := orch.RunAllTools(cmd.Context(), tools...)
	if results != nil {
		printSummary(cmd.OutOrStdout(), results, colorOutput)

		reportPath, _ := cmd.Flags().GetString("report")
		if reportPath != "" {
			if err := report.Write(reportPath, results); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportPath)
		}
	}

	if runErr != nil {
		return runErr
	}
	if results.HasFailure() {
		return ErrToolsFailed
	}
	return nil
}

// printPlan shows what a run would do
func printPlan(w io.Writer, cfg *config.Config, paths []string, tools []models.Tool) {
	source := cfg.Path
	if source == "" {
		source = "(defaults)"
	}

	fmt.Fprintf(w, "Config: %s\n", source)
	fmt.Fprintf(w, "Paths: %s\n", strings.Join(paths, ", "))
	fmt.Fprintf(w, "Tools:\n")
	for i, tool := range tools {
		fmt.Fprintf(w, "  %d. %s\n", i+1, tool)
	}
}

// printSummary writes one line per tool outcome
func printSummary(w io.Writer, results *models.Results, colorOutput bool) {
	fmt.Fprintf(w, "\n")
	for _, o := range results.Outcomes() {
		label := o.Result.String()
		if colorOutput {
			label = resultColor(o.Result).Sprint(label)
		}
		fmt.Fprintf(w, "%-12s %s (%s)\n", o.Tool, label, o.Duration.Round(time.Millisecond))
	}
}

func resultColor(r models.Result) *color.Color {
	switch r {
	case models.ResultSuccess:
		return color.New(color.FgGreen)
	case models.ResultPartial:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
