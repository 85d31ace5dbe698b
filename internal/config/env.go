package config

import (
	"github.com/caarlos0/env/v11"
)

// Env stores environment-driven overrides for the command line.
type Env struct {
	// ConfigPath is the config file to use instead of discovery
	ConfigPath string `env:"MULTILINT_CONFIG"`
	// LogLevel overrides multilint.log_level
	LogLevel string `env:"MULTILINT_LOG_LEVEL"`
	// LogDir overrides multilint.log_dir
	LogDir string `env:"MULTILINT_LOG_DIR"`
	// NoColor disables colored output when set to any non-empty value
	NoColor string `env:"NO_COLOR"`
}

// LoadEnv parses environment variables into Env.
func LoadEnv() (Env, error) {
	return env.ParseAs[Env]()
}

// ColorDisabled reports whether NO_COLOR is set.
func (e Env) ColorDisabled() bool {
	return e.NoColor != ""
}
