package runner

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFilesSkipsIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{
		"a.go",
		"sub/b.go",
		"sub/notes.txt",
		"vendor/v.go",
		"testdata/t.go",
		".hidden/h.go",
		"_scratch/s.go",
	} {
		writeTestFile(t, filepath.Join(dir, rel), "package p\n")
	}

	files, failed := collectFiles([]string{dir}, goSources)
	assert.Empty(t, failed)

	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	sort.Strings(rels)
	assert.Equal(t, []string{"a.go", "sub/b.go"}, rels)
}

func TestCollectFilesExplicitAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "testdata", "x.go")
	writeTestFile(t, explicit, "package p\n")
	writeTestFile(t, filepath.Join(dir, "a.go"), "package p\n")

	files, failed := collectFiles([]string{explicit, dir, filepath.Join(dir, "a.go")}, goSources)
	assert.Empty(t, failed)
	assert.Equal(t, []string{explicit, filepath.Join(dir, "a.go")}, files)
}

func TestCollectFilesMissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	files, failed := collectFiles([]string{missing}, goSources)
	assert.Empty(t, files)
	require.Len(t, failed, 1)
	assert.Equal(t, missing, failed[0].Path)
}

func TestMatchers(t *testing.T) {
	assert.True(t, isGoFile("main.go"))
	assert.False(t, isGoFile("main.go.orig"))
	assert.True(t, moduleFiles.Match("go.mod"))
	assert.True(t, moduleFiles.Match("go.work"))
	assert.False(t, moduleFiles.Match("go.sum"))
	assert.False(t, goSources.Match("go.mod"))
}

func TestModuleFinder(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "go.mod"), "module example.com/m\n\ngo 1.23\n")
	nested := filepath.Join(dir, "a", "b", "c.go")
	writeTestFile(t, nested, "package b\n")

	mf := newModuleFinder()
	info := mf.forFile(nested)
	assert.Equal(t, "example.com/m", info.Module)
	assert.Equal(t, "1.23", info.GoVersion)
	assert.Equal(t, filepath.Join(dir, "go.mod"), info.Path)
}
