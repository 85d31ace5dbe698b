package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// loadSettings are the options shared by the package-loading checkers.
type loadSettings struct {
	tests     bool
	buildTags []string
}

func (b Base) loadSettings() (loadSettings, error) {
	tests, err := b.opts.Bool("tests", false)
	if err != nil {
		return loadSettings{}, err
	}
	tags, _, err := b.opts.Strings("build_tags")
	if err != nil {
		return loadSettings{}, err
	}
	return loadSettings{tests: tests, buildTags: tags}, nil
}

// packagePatterns turns source paths into go/packages patterns: directories
// become "dir/..." and Go files become "file=" queries. The returned
// directory is where the go command should run.
func packagePatterns(paths []string) ([]string, string, error) {
	var patterns []string
	var dir string

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, "", err
		}

		if info.IsDir() {
			patterns = append(patterns, abs+string(filepath.Separator)+"...")
			if dir == "" {
				dir = abs
			}
			continue
		}
		if isGoFile(abs) {
			patterns = append(patterns, "file="+abs)
			if dir == "" {
				dir = filepath.Dir(abs)
			}
		}
	}

	if len(patterns) == 0 {
		return nil, "", fmt.Errorf("no Go packages in %s", strings.Join(paths, ", "))
	}
	return patterns, dir, nil
}

// loadPackages loads the packages under the runner's paths. It requires the
// go command, which go/packages runs to list packages.
func (b Base) loadPackages(ctx context.Context, mode packages.LoadMode, settings loadSettings) ([]*packages.Package, error) {
	if err := b.requireCommand("go"); err != nil {
		return nil, err
	}

	patterns, dir, err := packagePatterns(b.paths)
	if err != nil {
		return nil, b.execError(err)
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    mode,
		Dir:     dir,
		Tests:   settings.tests,
	}
	if len(settings.buildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(settings.buildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, b.execError(err)
	}
	return pkgs, nil
}

// packageFiles lists the Go files of pkgs, without duplicates. Generated
// test main packages are skipped.
func packageFiles(pkgs []*packages.Package) []string {
	var files []string
	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.PkgPath, ".test") {
			continue
		}
		for _, f := range pkg.GoFiles {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}

// packageErrorFindings converts list and parse errors of pkgs into findings.
// Type errors are included unless skipTypeErrors is set.
func packageErrorFindings(pkgs []*packages.Package, skipTypeErrors bool) []finding {
	var findings []finding
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if skipTypeErrors && e.Kind == packages.TypeError {
				continue
			}
			findings = append(findings, errorFinding(pkg, e))
		}
	}
	return findings
}

func errorFinding(pkg *packages.Package, e packages.Error) finding {
	f := finding{File: pkg.PkgPath, Source: errorKind(e.Kind), Message: e.Msg}
	if file, line, col, ok := splitPos(e.Pos); ok {
		f.File, f.Line, f.Column = file, line, col
	}
	return f
}

func errorKind(kind packages.ErrorKind) string {
	switch kind {
	case packages.ListError:
		return "list"
	case packages.ParseError:
		return "parse"
	case packages.TypeError:
		return "type"
	default:
		return "unknown"
	}
}

// splitPos parses "file:line:col" or "file:line" positions.
func splitPos(pos string) (string, int, int, bool) {
	if pos == "" || pos == "-" {
		return "", 0, 0, false
	}

	parts := strings.Split(pos, ":")
	nums := make([]int, 0, 2)
	for len(parts) > 1 && len(nums) < 2 {
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		parts = parts[:len(parts)-1]
	}
	if len(nums) == 0 {
		return pos, 0, 0, true
	}

	file := strings.Join(parts, ":")
	if len(nums) == 1 {
		return file, nums[0], 0, true
	}
	return file, nums[0], nums[1], true
}
