package scan_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yaac/internal/adapters/bundle"
	"go.trai.ch/yaac/internal/adapters/scan"
	"go.trai.ch/yaac/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func paths(deps []domain.Dependency) []string {
	out := make([]string, 0, len(deps))
	for _, dep := range deps {
		out = append(out, dep.Path)
	}
	return out
}

func stat(t *testing.T, path string) time.Time {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.ModTime()
}

func TestStylus_Scan(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.styl")
	b := filepath.Join(root, "b.styl")
	c := filepath.Join(root, "dir1", "c.styl")

	writeFile(t, a, "@import \"b\"\n@import 'missing'\n@import \"plain.css\"\nbody\n  color red\n")
	writeFile(t, b, "  @import 'dir1/c'  \n")
	writeFile(t, c, "p\n  margin 0\n")
	writeFile(t, filepath.Join(root, "plain.css"), "p{}")

	deps, err := scan.NewStylus().Scan(a, stat(t, a), nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{a, b, c}, paths(deps))
	assert.Equal(t, a, deps[0].Path, "stylus records the root first")

	root0, ok := domain.FindDependency(deps, a)
	require.True(t, ok)
	assert.Contains(t, string(root0.Content), "color red")
	assert.True(t, stat(t, c).Equal(deps[2].ModifiedAt))
}

func TestLess_Scan(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.less")
	b := filepath.Join(root, "dir1", "b.less")
	c := filepath.Join(root, "dir1", "c.less")

	writeFile(t, a, "@import \"dir1/b.less\";\n@import \"missing.less\";\n@import 'reset.css';\n@import \"nosemi.less\"\n")
	writeFile(t, b, "@import 'c.less' ;\n.b { color: red; }\n")
	writeFile(t, c, ".c { color: blue; }\n")
	writeFile(t, filepath.Join(root, "reset.css"), "")
	writeFile(t, filepath.Join(root, "nosemi.less"), "")

	deps, err := scan.NewLess().Scan(a, stat(t, a), nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{a, b, c}, paths(deps))
	assert.Equal(t, a, deps[0].Path, "less records the root first")
}

func TestScanners_ImportCycle(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.less")
	b := filepath.Join(root, "b.less")
	writeFile(t, a, "@import \"b.less\";\n")
	writeFile(t, b, "@import \"a.less\";\n@import \"b.less\";\n")

	deps, err := scan.NewLess().Scan(a, stat(t, a), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths(deps))
}

func TestScanners_ExtendAccumulator(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.styl")
	writeFile(t, a, "body\n  color red\n")

	existing := []domain.Dependency{{Path: "/elsewhere.styl"}}
	deps, err := scan.NewStylus().Scan(a, stat(t, a), existing)
	require.NoError(t, err)
	assert.Equal(t, []string{"/elsewhere.styl", a}, paths(deps))
}

func TestScanners_MissingRoot(t *testing.T) {
	_, err := scan.NewStylus().Scan(filepath.Join(t.TempDir(), "gone.styl"), time.Now(), nil)
	require.ErrorContains(t, err, domain.ErrSourceReadFailed.Error())
}

func TestBundle_Scan(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.js")
	b := filepath.Join(root, "dir1", "b.js")
	c := filepath.Join(root, "c.js")
	d := filepath.Join(root, "d.js")

	writeFile(t, a, "//= require dir1/b\n//= require d\n")
	writeFile(t, b, "//= require ../c\n")
	writeFile(t, c, "//= require d\n")
	writeFile(t, d, "var d;\n")

	deps, err := scan.NewBundle(bundle.NewGraph()).Scan(a, stat(t, a), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{d, c, b, a}, paths(deps), "bundle records the root last")
	for _, dep := range deps {
		assert.Nil(t, dep.Content)
		assert.False(t, dep.ModifiedAt.IsZero())
	}
}

type failingChainer struct{}

func (failingChainer) Chain(string) ([]string, error) {
	return nil, errors.New("boom")
}

func TestBundle_Scan_ChainError(t *testing.T) {
	_, err := scan.NewBundle(failingChainer{}).Scan("/a.js", time.Now(), nil)
	require.ErrorContains(t, err, "boom")
}
