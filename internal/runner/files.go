package runner

import (
	"strings"

	"github.com/gkze/multilint/internal/fileutil"
	"github.com/gkze/multilint/internal/models"
)

// goExcludeDirs are skipped while walking, as the go command skips them.
var goExcludeDirs = []string{"vendor", "testdata"}

var (
	goSources   = fileutil.ScanOptions{Extensions: []string{".go"}, ExcludeDirs: goExcludeDirs}
	moduleFiles = fileutil.ScanOptions{Names: []string{"go.mod", "go.work"}, ExcludeDirs: goExcludeDirs}
)

// isGoFile matches Go source files.
func isGoFile(name string) bool {
	return strings.HasSuffix(name, ".go")
}

// collectFiles expands paths into the files selected by opts. Paths that
// cannot be read become failed file results.
func collectFiles(paths []string, opts fileutil.ScanOptions) ([]string, []models.FileResult) {
	result := fileutil.Scan(paths, opts)

	failed := make([]models.FileResult, 0, len(result.Errors))
	for _, err := range result.Errors {
		failed = append(failed, models.FileResult{
			Path:    err.Path,
			Result:  models.ResultFailure,
			Message: err.Err.Error(),
		})
	}
	return result.Files, failed
}
