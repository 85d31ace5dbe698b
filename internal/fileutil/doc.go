// Package fileutil expands source paths into the files a tool should
// process.
//
// Scan accepts any mix of files and directories. Directories are walked
// recursively; files named explicitly are always kept, whatever their
// extension. While walking, directories whose names start with "." or "_"
// are skipped, as the go command does, along with any ExcludeDirs.
//
// Basic usage (Go sources, skipping vendored code):
//
//	result := fileutil.Scan([]string{"./cmd", "main.go"}, fileutil.ScanOptions{
//	    Extensions:  []string{".go"},
//	    ExcludeDirs: []string{"vendor", "testdata"},
//	})
//	for _, err := range result.Errors {
//	    log.Printf("skipped %s: %v", err.Path, err.Err)
//	}
//
// Matching by exact name:
//
//	result := fileutil.Scan(paths, fileutil.ScanOptions{
//	    Names: []string{"go.mod", "go.work"},
//	})
//
// Scanning is error tolerant: unreadable paths are collected in
// ScanResult.Errors and the walk continues. Output order is deterministic:
// paths in the order given, each directory in lexical order, without
// duplicates.
package fileutil
