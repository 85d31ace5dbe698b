package executor

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// resolvePaths picks the source paths for a run: explicit arguments, then
// the config's src_paths, then the current directory.
func (o *Orchestrator) resolvePaths(args []string) []string {
	if len(args) > 0 {
		return append([]string(nil), args...)
	}
	if len(o.cfg.Settings.SrcPaths) > 0 {
		return o.relativeToConfig(o.cfg.Settings.SrcPaths)
	}
	return []string{"."}
}

// relativeToConfig anchors relative paths from the config file at its
// directory. Without a config file paths are left as they are.
func (o *Orchestrator) relativeToConfig(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if o.cfg.Path != "" && !filepath.IsAbs(p) {
			p = filepath.Join(o.cfg.Dir(), p)
		}
		out = append(out, p)
	}
	return out
}

// expandPaths resolves glob patterns, including "**", into the matching
// files and directories. Plain paths are kept even when they do not exist,
// so the tool reports them. A pattern matching nothing contributes nothing.
func expandPaths(patterns []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid path pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func hasMeta(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
