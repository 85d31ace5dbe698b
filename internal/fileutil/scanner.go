package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ScanOptions configures which files Scan keeps
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".go"), case-insensitive
	Extensions []string
	// Names is a list of exact base names to include (e.g., "go.mod")
	Names []string
	// ExcludeDirs is a list of directory names to skip while walking (e.g., "vendor")
	ExcludeDirs []string
}

// ScanError records a path that could not be read
type ScanError struct {
	Path string
	Err  error
}

// Error implements the error interface for ScanError.
func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// ScanResult contains the results of a scan
type ScanResult struct {
	// Files contains the matched files, cleaned, in scan order
	Files []string
	// Errors contains the paths that could not be read
	Errors []*ScanError
}

// SkipDir reports whether a directory found while walking is skipped
// regardless of options.
func SkipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// Match reports whether a base name passes the options' filters. Options
// without filters match everything.
func (o ScanOptions) Match(name string) bool {
	if len(o.Extensions) == 0 && len(o.Names) == 0 {
		return true
	}
	for _, n := range o.Names {
		if name == n {
			return true
		}
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range o.Extensions {
		// Ensure extensions start with a dot
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// Scan expands paths into matching files
func Scan(paths []string, opts ScanOptions) *ScanResult {
	result := &ScanResult{}
	seen := make(map[string]bool)

	excludeMap := make(map[string]bool)
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			result.Files = append(result.Files, clean)
		}
	}
	fail := func(path string, err error) {
		result.Errors = append(result.Errors, &ScanError{Path: path, Err: err})
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			fail(root, err)
			continue
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				fail(path, err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil // Continue walking
			}

			if d.IsDir() {
				// The root itself is never skipped
				if path != root && (excludeMap[d.Name()] || SkipDir(d.Name())) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.Type().IsRegular() && opts.Match(d.Name()) {
				add(path)
			}
			return nil
		})
		if err != nil {
			fail(root, err)
		}
	}

	return result
}
