package runner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gkze/multilint/internal/config"
	"github.com/gkze/multilint/internal/models"
	gofumpt "mvdan.cc/gofumpt/format"
)

var langVersionPattern = regexp.MustCompile(`^(go)?1\.[0-9]+(\.[0-9]+)?$`)

// GofumptRunner applies gofumpt's stricter formatting rules.
//
// Options: check (bool), lang_version (string, e.g. "go1.22" or "1.22"),
// module_path (string), extra_rules (bool). When lang_version or
// module_path are unset they are read from the go.mod governing each file.
type GofumptRunner struct {
	Base
	fileReport
}

// NewGofumpt creates a GofumptRunner.
func NewGofumpt(b Base) Runner {
	return &GofumptRunner{Base: b}
}

// Run formats every Go file under the runner's paths.
func (r *GofumptRunner) Run(ctx context.Context) (models.Result, error) {
	langVersion, err := r.langVersion()
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}
	modulePath, err := r.opts.String("module_path", "")
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}
	extraRules, err := r.opts.Bool("extra_rules", false)
	if err != nil {
		return models.ResultFailure, r.execError(err)
	}

	modules := newModuleFinder()
	return r.runFormatter(ctx, &r.fileReport, goSources, func(path string, src []byte) ([]byte, error) {
		opts := gofumpt.Options{
			LangVersion: langVersion,
			ModulePath:  modulePath,
			ExtraRules:  extraRules,
		}
		if opts.LangVersion == "" || opts.ModulePath == "" {
			mod := modules.forFile(path)
			if opts.LangVersion == "" && mod.GoVersion != "" {
				opts.LangVersion = "go" + mod.GoVersion
			}
			if opts.ModulePath == "" {
				opts.ModulePath = mod.Module
			}
		}
		return gofumpt.Source(src, opts)
	})
}

// langVersion validates and normalizes the lang_version option to "go1.N".
func (r *GofumptRunner) langVersion() (string, error) {
	v, err := r.opts.String("lang_version", "")
	if err != nil || v == "" {
		return "", err
	}
	v = strings.TrimSpace(v)
	if !langVersionPattern.MatchString(v) {
		return "", &config.OptionError{
			Key:    "lang_version",
			Value:  v,
			Reason: fmt.Sprintf("must be a Go version like %q", "go1.22"),
		}
	}
	return "go" + strings.TrimPrefix(v, "go"), nil
}
