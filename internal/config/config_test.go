package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkze/multilint/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// TestFindNearestAncestor verifies discovery walks up from a nested directory
func TestFindNearestAncestor(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "p")
	r := filepath.Join(p, "q", "r")
	if err := os.MkdirAll(r, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	writeFile(t, filepath.Join(p, FileName), "multilint: {}\n")

	got, ok := Find(r)
	if !ok {
		t.Fatalf("Find(%s) found nothing", r)
	}
	if want := filepath.Join(p, FileName); got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}

// TestFindPrefersClosest verifies the first match wins
func TestFindPrefersClosest(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "inner")
	writeFile(t, filepath.Join(root, FileName), "")
	writeFile(t, filepath.Join(inner, TOMLFileName), "")

	got, ok := Find(inner)
	if !ok || got != filepath.Join(inner, TOMLFileName) {
		t.Errorf("Find() = %q, %v", got, ok)
	}

	// YAML wins over TOML in the same directory
	writeFile(t, filepath.Join(inner, FileName), "")
	got, _ = Find(inner)
	if got != filepath.Join(inner, FileName) {
		t.Errorf("Find() = %q, want yaml file", got)
	}
}

// TestFindNone verifies discovery returns nothing when no file exists up to root
func TestFindNone(t *testing.T) {
	dir := t.TempDir()
	// Skip when a config file already exists above the temp dir
	if _, ok := Find(filepath.Dir(dir)); ok {
		t.Skip("a config file exists above the temp dir")
	}

	if got, ok := Find(dir); ok {
		t.Errorf("Find() = %q, want none", got)
	}
}

// TestParseYAML tests decoding a YAML file into a nested map
func TestParseYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `multilint:
  tool_order: [goimports, gofmt]
gofmt:
  check: true
`)

	raw, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	gofmt, ok := raw["gofmt"].(map[string]any)
	if !ok {
		t.Fatalf("gofmt section = %T", raw["gofmt"])
	}
	if gofmt["check"] != true {
		t.Errorf("gofmt.check = %v, want true", gofmt["check"])
	}
}

// TestParseTOML tests decoding the TOML alternative
func TestParseTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), TOMLFileName)
	writeFile(t, path, `[multilint]
tool_order = ["vet"]

[vet]
disable = ["printf"]
`)

	raw, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	vet, ok := raw["vet"].(map[string]any)
	if !ok {
		t.Fatalf("vet section = %T", raw["vet"])
	}
	if list, ok := vet["disable"].([]any); !ok || len(list) != 1 || list[0] != "printf" {
		t.Errorf("vet.disable = %#v", vet["disable"])
	}
}

// TestParseMissing tests that a missing file reports ErrNotFound
func TestParseMissing(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Parse() error = %v, want ErrNotFound", err)
	}
}

// TestParseMalformed tests that malformed files report a ParseError
func TestParseMalformed(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		FileName:     "multilint: [unterminated\n",
		TOMLFileName: "[multilint\n",
	} {
		path := filepath.Join(dir, name)
		writeFile(t, path, content)

		_, err := Parse(path)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%s) error = %v, want *ParseError", name, err)
			continue
		}
		if perr.Path != path {
			t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("errors.Is(err, ErrParse) = false for %s", name)
		}
	}
}

// TestLoadMissingFileReturnsDefaults tests fallback to defaults
func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load() should not error on missing file, got: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if cfg.Settings.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.Settings.LogLevel)
	}
	if cfg.Tool("gofmt").Len() != 0 {
		t.Errorf("gofmt options should be empty")
	}
}

// TestLoadDirectoryDiscovers tests that a directory argument starts discovery
func TestLoadDirectoryDiscovers(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, FileName), `multilint:
  tool_order: [vet, gofmt]
  src_paths: [cmd, "internal/**"]
  log_level: debug
  log_dir: .multilint/logs
  lock: true
goimports:
  local-prefix: github.com/gkze
`)

	cfg, err := Load(sub)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.Dir() != root {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), root)
	}

	order, err := cfg.Order()
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if len(order) != 2 || order[0] != models.ToolVet || order[1] != models.ToolGofmt {
		t.Errorf("Order() = %v", order)
	}
	if len(cfg.Settings.SrcPaths) != 2 || cfg.Settings.SrcPaths[1] != "internal/**" {
		t.Errorf("SrcPaths = %v", cfg.Settings.SrcPaths)
	}
	if cfg.Settings.LogLevel != "debug" || cfg.Settings.LogDir != ".multilint/logs" || !cfg.Settings.Lock {
		t.Errorf("Settings = %+v", cfg.Settings)
	}
	if prefix, _ := cfg.Tool("goimports").String("local_prefix", ""); prefix != "github.com/gkze" {
		t.Errorf("goimports.local_prefix = %q", prefix)
	}
}

// TestLoadEmptySection tests that a tool listed without options is accepted
func TestLoadEmptySection(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "gofmt:\nvet:\n  enable: [shadow]\nmultilint:\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Tool("gofmt").Len() != 0 {
		t.Errorf("gofmt options = %v, want none", cfg.Tool("gofmt").Keys())
	}
	if !cfg.Tool("vet").Has("enable") {
		t.Errorf("vet.enable missing")
	}
	if cfg.Settings.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.Settings.LogLevel)
	}
}

// TestLoadMalformedIsFatal tests that a malformed file surfaces an error
func TestLoadMalformedIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "gofmt: [1, 2\n")

	if _, err := Load(path); !errors.Is(err, ErrParse) {
		t.Errorf("Load() error = %v, want ErrParse", err)
	}
}

// TestLoadInvalidValues tests rejection of bad section shapes and values
func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"scalar section", "gofmt: true\n"},
		{"tool_order not a list", "multilint:\n  tool_order: 3\n"},
		{"unknown tool", "multilint:\n  tool_order: [pylint]\n"},
		{"bad log level", "multilint:\n  log_level: verbose\n"},
		{"lock not bool", "multilint:\n  lock: sometimes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load() should fail for %s", tt.name)
			}
		})
	}
}

// TestMergeWithFlags tests that non-nil overrides win
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	level := "warn"
	cfg.MergeWithFlags(&level, nil)

	if cfg.Settings.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.Settings.LogLevel)
	}
	if cfg.Settings.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.Settings.LogDir)
	}
}

// TestLoadEnv tests environment overrides
func TestLoadEnv(t *testing.T) {
	t.Setenv("MULTILINT_CONFIG", "/tmp/custom.yaml")
	t.Setenv("MULTILINT_LOG_LEVEL", "error")
	t.Setenv("NO_COLOR", "1")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if e.ConfigPath != "/tmp/custom.yaml" || e.LogLevel != "error" || e.LogDir != "" {
		t.Errorf("LoadEnv() = %+v", e)
	}
	if !e.ColorDisabled() {
		t.Error("ColorDisabled() = false, want true")
	}
}
