// Package config locates and parses the multilint configuration file.
//
// The file has one section per tool, keyed by the tool's lowercase name,
// plus a "multilint" section for the orchestrator itself:
//
//	multilint:
//	  tool_order: [goimports, gofmt, vet]
//	  src_paths: [cmd, internal]
//	goimports:
//	  local-prefix: github.com/example/project
//	gofmt:
//	  check: true
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gkze/multilint/internal/logger"
	"github.com/gkze/multilint/internal/models"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config file names, in lookup order within a directory.
const (
	FileName     = ".multilint.yaml"
	TOMLFileName = ".multilint.toml"
)

var (
	// ErrNotFound indicates the config file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrParse indicates the config file exists but could not be decoded.
	ErrParse = errors.New("failed to parse config file")
)

// ParseError reports a malformed config file.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrParse, e.Path, e.Err)
}

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Settings holds the "multilint" section.
type Settings struct {
	// ToolOrder overrides the built-in execution order
	ToolOrder []string

	// SrcPaths overrides the default "." scope when no paths are given
	SrcPaths []string

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string

	// LogFormat is the console line format, see logger.WithFormat
	LogFormat string

	// LogDir enables a JSON run log in this directory when set
	LogDir string

	// Lock guards runs with a lock file next to the config file
	Lock bool
}

// Config is a parsed configuration file. It is not modified after Load.
type Config struct {
	// Path is the file the config was read from, empty when defaults are used
	Path string

	// Settings is the multilint section
	Settings Settings

	sections map[string]Options
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			LogLevel: "info",
		},
		sections: map[string]Options{},
	}
}

// Find returns the nearest config file, searching startDir and then each of
// its ancestors up to the filesystem root. It only reads the filesystem.
func Find(startDir string) (string, bool) {
	current, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		for _, name := range []string{FileName, TOMLFileName} {
			candidate := filepath.Join(current, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, true
			}
		}

		// Move up one directory
		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			return "", false
		}
		current = parent
	}
}

// Parse reads path into a nested key-value map. TOML is used for .toml files,
// YAML otherwise. A missing file yields an error wrapping ErrNotFound; a
// malformed one yields a *ParseError.
func Parse(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	raw := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// Load resolves and parses the configuration.
//
// An empty path or a directory starts discovery there (the working directory
// for an empty path). A file that does not exist, or a discovery that finds
// nothing, returns DefaultConfig without error. A file that exists but is
// malformed or invalid is an error.
func Load(path string) (*Config, error) {
	resolved, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		return DefaultConfig(), nil
	}

	raw, err := Parse(resolved)
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg, err := fromRaw(resolved, raw)
	if err != nil {
		return nil, &ParseError{Path: resolved, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", resolved, err)
	}
	return cfg, nil
}

func resolve(path string) (string, error) {
	if path == "" {
		path = "."
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		found, ok := Find(path)
		if !ok {
			return "", nil
		}
		return found, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to stat config path %s: %w", path, err)
	}
	return path, nil
}

func fromRaw(path string, raw map[string]any) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path

	for name, value := range raw {
		if value == nil {
			cfg.sections[strings.ToLower(name)] = NewOptions(nil)
			continue
		}
		section, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section %q must be a mapping, got %T", name, value)
		}
		cfg.sections[strings.ToLower(name)] = NewOptions(section)
	}

	self := cfg.Tool(models.ToolMultilint.String())

	var err error
	if cfg.Settings.ToolOrder, _, err = self.Strings("tool_order"); err != nil {
		return nil, err
	}
	if cfg.Settings.SrcPaths, _, err = self.Strings("src_paths"); err != nil {
		return nil, err
	}
	if cfg.Settings.LogLevel, err = self.String("log_level", cfg.Settings.LogLevel); err != nil {
		return nil, err
	}
	if cfg.Settings.LogFormat, err = self.String("log_format", ""); err != nil {
		return nil, err
	}
	if cfg.Settings.LogDir, err = self.String("log_dir", ""); err != nil {
		return nil, err
	}
	if cfg.Settings.Lock, err = self.Bool("lock", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Tool returns the options section for a tool name. A tool without a
// section gets empty options.
func (c *Config) Tool(name string) Options {
	if opts, ok := c.sections[strings.ToLower(name)]; ok {
		return opts
	}
	return NewOptions(nil)
}

// Dir returns the directory holding the config file, or the working
// directory when defaults are in use.
func (c *Config) Dir() string {
	if c.Path != "" {
		if abs, err := filepath.Abs(c.Path); err == nil {
			return filepath.Dir(abs)
		}
		return filepath.Dir(c.Path)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Order returns the configured tool order, or nil when unset.
func (c *Config) Order() ([]models.Tool, error) {
	if len(c.Settings.ToolOrder) == 0 {
		return nil, nil
	}
	return models.ParseTools(c.Settings.ToolOrder)
}

// MergeWithFlags merges CLI flags and environment values into the settings.
// Non-nil values override configuration values.
func (c *Config) MergeWithFlags(logLevel *string, logDir *string) {
	if logLevel != nil {
		c.Settings.LogLevel = *logLevel
	}
	if logDir != nil {
		c.Settings.LogDir = *logDir
	}
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.Settings.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.Settings.LogLevel)
	}
	if _, err := c.Order(); err != nil {
		return fmt.Errorf("invalid tool_order: %w", err)
	}
	return nil
}
