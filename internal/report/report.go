// Package report renders the outcome of a run as Markdown or HTML.
package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gkze/multilint/internal/filelock"
	"github.com/gkze/multilint/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders results as a summary table followed by the files that
// did not pass.
func Markdown(results *models.Results) string {
	var sb strings.Builder
	sb.WriteString("# multilint report\n\n")

	if results == nil || results.Len() == 0 {
		sb.WriteString("No tools ran.\n")
		return sb.String()
	}

	sb.WriteString("| Tool | Result | Files | Duration |\n")
	sb.WriteString("|------|--------|-------|----------|\n")
	for _, o := range results.Outcomes() {
		fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n", o.Tool, o.Result, len(o.Files), o.Duration.Round(time.Millisecond))
	}

	for _, o := range results.Outcomes() {
		problems := problemFiles(o)
		if len(problems) == 0 && o.Err == nil {
			continue
		}

		fmt.Fprintf(&sb, "\n## %s\n\n", o.Tool)
		if o.Err != nil {
			fmt.Fprintf(&sb, "Error: %s\n\n", escape(o.Err.Error()))
		}
		for _, f := range problems {
			fmt.Fprintf(&sb, "- `%s`: %s", f.Path, f.Result)
			if f.Message != "" {
				fmt.Fprintf(&sb, " (%s)", escape(f.Message))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func problemFiles(o models.Outcome) []models.FileResult {
	var out []models.FileResult
	for _, f := range o.Files {
		if f.Result != models.ResultSuccess {
			out = append(out, f)
		}
	}
	return out
}

// escape keeps messages from breaking the Markdown structure.
func escape(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// HTML renders the Markdown report as an HTML fragment.
func HTML(results *models.Results) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(results)), &buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write saves the report to path: HTML for .html and .htm files, Markdown
// otherwise.
func Write(path string, results *models.Results) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		html, err := HTML(results)
		if err != nil {
			return err
		}
		data = html
	default:
		data = []byte(Markdown(results))
	}

	if err := filelock.AtomicWrite(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
