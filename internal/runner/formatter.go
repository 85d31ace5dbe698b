package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/gkze/multilint/internal/filelock"
	"github.com/gkze/multilint/internal/fileutil"
	"github.com/gkze/multilint/internal/logger"
	"github.com/gkze/multilint/internal/models"
	"github.com/pmezard/go-difflib/difflib"
)

// formatFunc returns the formatted version of one file.
type formatFunc func(path string, src []byte) ([]byte, error)

// formatFiles runs fn over every file under the runner's paths selected by
// scan.
//
// Without check, changed files are rewritten in place. With check, nothing
// is written: the diff is logged and a file that needs changes fails.
// Errors from fn fail only the file they occurred on. The returned error is
// non-nil only when ctx ends the loop early.
func (b Base) formatFiles(ctx context.Context, scan fileutil.ScanOptions, check bool, fn formatFunc) ([]models.FileResult, error) {
	log := b.Logger(logger.LevelInfo)
	capture := b.Capture(logger.LevelInfo)

	files, results := collectFiles(b.paths, scan)
	for _, failed := range results {
		log.Errorf("%s: %s", failed.Path, failed.Message)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, b.formatFile(path, check, fn, log, capture))
	}

	return results, nil
}

func (b Base) formatFile(path string, check bool, fn formatFunc, log *logger.Logger, capture *logger.Capture) models.FileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("%s: %v", path, err)
		return models.FileResult{Path: path, Result: models.ResultFailure, Message: err.Error()}
	}

	out, err := fn(path, src)
	if err != nil {
		log.Errorf("%s: %v", path, err)
		return models.FileResult{Path: path, Result: models.ResultFailure, Message: err.Error()}
	}

	if bytes.Equal(src, out) {
		log.Debugf("%s: unchanged", path)
		return models.FileResult{Path: path, Result: models.ResultSuccess}
	}

	if check {
		capture.WriteString(unifiedDiff(path, src, out))
		return models.FileResult{
			Path:    path,
			Result:  models.ResultFailure,
			Changed: true,
			Message: fmt.Sprintf("needs %s", b.tool),
		}
	}

	if err := filelock.RewriteFile(path, out); err != nil {
		log.Errorf("%s: %v", path, err)
		return models.FileResult{Path: path, Result: models.ResultFailure, Message: err.Error()}
	}
	log.Infof("fixed %s", path)
	return models.FileResult{Path: path, Result: models.ResultSuccess, Changed: true}
}

// formatOutcome folds formatter file results. In fix mode a run that
// changed nothing is a partial success.
func formatOutcome(files []models.FileResult, check bool) models.Result {
	result := models.FoldFiles(files)
	if check || result != models.ResultSuccess {
		return result
	}
	for _, f := range files {
		if f.Changed {
			return models.ResultSuccess
		}
	}
	return models.ResultPartial
}

// unifiedDiff renders the change between src and out for logging.
func unifiedDiff(path string, src, out []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(src)),
		B:        difflib.SplitLines(string(out)),
		FromFile: path + ".orig",
		ToFile:   path,
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("%s: failed to render diff: %v", path, err)
	}
	return diff
}

// runFormatter is the Run body shared by the fixing tools.
func (b Base) runFormatter(ctx context.Context, report *fileReport, scan fileutil.ScanOptions, fn formatFunc) (models.Result, error) {
	check, err := b.opts.Bool("check", false)
	if err != nil {
		return models.ResultFailure, b.execError(err)
	}

	files, err := b.formatFiles(ctx, scan, check, fn)
	report.files = files
	if err != nil {
		return models.ResultFailure, b.execError(err)
	}
	return formatOutcome(files, check), nil
}
