package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkze/multilint/internal/config"
	"github.com/gkze/multilint/internal/logger"
	"github.com/gkze/multilint/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// project creates a directory with a config file and one Go file.
func project(t *testing.T, cfg, src string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)
	writeFile(t, cfgPath, cfg)
	writeFile(t, filepath.Join(dir, "p.go"), src)
	return dir, cfgPath
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("MULTILINT_CONFIG", "")
	t.Setenv("MULTILINT_LOG_LEVEL", "")
	t.Setenv("MULTILINT_LOG_DIR", "")
	t.Setenv("NO_COLOR", "1")

	cmd := NewRootCommand()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunDryRun(t *testing.T) {
	dir, cfgPath := project(t, "multilint:\n  tool_order: [gofmt, vet]\n", "package p\n")

	out, _, err := execute(t, "--config", cfgPath, "--dry-run", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Config: "+cfgPath)
	assert.Contains(t, out, "Paths: "+dir)
	assert.Contains(t, out, "1. gofmt")
	assert.Contains(t, out, "2. vet")
	assert.NotContains(t, out, "staticcheck")
}

func TestRunToolsFlagOverridesOrder(t *testing.T) {
	dir, cfgPath := project(t, "", "package p\n")

	out, _, err := execute(t, "--config", cfgPath, "--dry-run", "--tools", "vet,GOFMT", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1. vet")
	assert.Contains(t, out, "2. gofmt")
}

func TestRunInvalidTools(t *testing.T) {
	dir, cfgPath := project(t, "", "package p\n")

	_, _, err := execute(t, "--config", cfgPath, "--tools", "pylint", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnknownTool)
}

func TestRunPrintsSummary(t *testing.T) {
	dir, cfgPath := project(t, "", "package p\nfunc f(){}\n")

	out, stderr, err := execute(t, "--config", cfgPath, "--tools", "gofmt,modfmt", dir)
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^gofmt\s+success`, out)
	assert.Regexp(t, `(?m)^modfmt\s+partial`, out)
	assert.Contains(t, stderr, "Running gofmt...")
}

func TestRunFailureExitsWithError(t *testing.T) {
	dir, cfgPath := project(t, "gofmt:\n  check: true\n", "package p\nfunc f(){}\n")

	out, _, err := execute(t, "--config", cfgPath, "--tools", "gofmt", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolsFailed))
	assert.Regexp(t, `(?m)^gofmt\s+failure`, out)
}

func TestRunMalformedConfig(t *testing.T) {
	dir, cfgPath := project(t, "multilint: [broken\n", "package p\n")

	_, _, err := execute(t, "--config", cfgPath, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParse)
}

func TestRunInvalidLogLevelFromEnv(t *testing.T) {
	dir, cfgPath := project(t, "", "package p\n")

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--config", cfgPath, "--dry-run", dir})
	t.Setenv("MULTILINT_LOG_LEVEL", "loud")

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRunWritesReportAndLogs(t *testing.T) {
	dir, cfgPath := project(t, "", "package p\n\nfunc f() {}\n")
	reportPath := filepath.Join(dir, "out", "report.md")
	logDir := filepath.Join(dir, "logs")

	out, _, err := execute(t, "--config", cfgPath, "--tools", "gofmt", "--report", reportPath, "--log-dir", logDir, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+reportPath)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| gofmt | partial |")

	latest, err := os.ReadFile(filepath.Join(logDir, logger.LatestLogName))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(latest), "Running gofmt..."))
}
