package study

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDirectory(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, dir)
	writeDoc(t, dir, "alpha.txt", "alpha content")
	writeDoc(t, dir, "beta.txt", "beta content")
	writeDoc(t, dir, "notes.md", "ignored extension")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeDoc(t, sub, "gamma.txt", "nested content")

	result, err := svc.SearchDirectory(dir, "")
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
	names := make([]string, len(result.Files))
	for i, f := range result.Files {
		names[i] = f.Name
	}
	assert.ElementsMatch(t, []string{"alpha.txt", "beta.txt", "gamma.txt"}, names)
}

func TestSearchDirectoryQuery(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, dir)
	writeDoc(t, dir, "Quarterly_Report.txt", "q1")
	writeDoc(t, dir, "summary.txt", "s1")

	result, err := svc.SearchDirectory(dir, "report")
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "Quarterly_Report.txt", result.Files[0].Name)
	assert.Equal(t, "report", result.Query)
}

func TestSearchDirectorySkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, dir)
	writeDoc(t, dir, "real.txt", "content")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), nil, 0o644))

	result, err := svc.SearchDirectory(dir, "")
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "real.txt", result.Files[0].Name)
}

func TestSearchDirectoryDefaultsToRoot(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, dir)
	writeDoc(t, dir, "here.txt", "content")

	result, err := svc.SearchDirectory("", "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
}

func TestSearchDirectoryMissing(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, dir)

	_, err := svc.SearchDirectory(filepath.Join(dir, "absent"), "")
	assert.Error(t, err)
}

func TestDocumentPaths(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, dir)
	writeDoc(t, dir, "a.txt", "one")
	writeDoc(t, dir, "b.txt", "two")

	paths, err := svc.DocumentPaths(dir)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	for _, p := range paths {
		assert.True(t, filepath.IsAbs(p))
	}
}
