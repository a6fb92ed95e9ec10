package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yaac/internal/adapters/fs"
	"go.trai.ch/yaac/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLocator_Locate(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeFile(t, filepath.Join(second, "a.js"), "second")
	writeFile(t, filepath.Join(first, "b.js"), "first")
	writeFile(t, filepath.Join(second, "b.js"), "second")
	writeFile(t, filepath.Join(second, "dir1", "c.js"), "nested")
	require.NoError(t, os.MkdirAll(filepath.Join(first, "dir.js"), 0o750))
	writeFile(t, filepath.Join(second, "dir.js"), "file")

	locator := fs.NewLocator()
	roots := []string{first, second}

	t.Run("falls through to later roots", func(t *testing.T) {
		src, err := locator.Locate("a.js", roots)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(second, "a.js"), src.Path)
		assert.Equal(t, "a.js", src.Name)
		assert.False(t, src.ModifiedAt.IsZero())
	})

	t.Run("first root wins", func(t *testing.T) {
		src, err := locator.Locate("b.js", roots)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(first, "b.js"), src.Path)
	})

	t.Run("nested names", func(t *testing.T) {
		src, err := locator.Locate("dir1/c.js", roots)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(second, "dir1", "c.js"), src.Path)
	})

	t.Run("directories are skipped", func(t *testing.T) {
		src, err := locator.Locate("dir.js", roots)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(second, "dir.js"), src.Path)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := locator.Locate("missing.js", roots)
		require.ErrorContains(t, err, domain.ErrAssetNotFound.Error())
	})

	t.Run("empty search path", func(t *testing.T) {
		_, err := locator.Locate("a.js", nil)
		require.ErrorContains(t, err, domain.ErrAssetNotFound.Error())
	})
}

func TestLocator_ReportsModificationTime(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.less")
	writeFile(t, path, "a")

	mtime := time.Date(2020, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	src, err := fs.NewLocator().Locate("a.less", []string{root})
	require.NoError(t, err)
	assert.True(t, mtime.Equal(src.ModifiedAt))
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"a.js", false},
		{"dir1/b.js", false},
		{"dir1/../b.js", false},
		{"", true},
		{"/etc/passwd", true},
		{"../secret.js", true},
		{"dir1/../../secret.js", true},
		{"..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidateName(tt.name)
			if tt.wantErr {
				require.ErrorContains(t, err, domain.ErrInvalidAssetName.Error())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestWalker_WalkAssets(t *testing.T) {
	// tmp/
	//   .git/config
	//   .hidden.js
	//   ignored/file.js
	//   out/a.1234.js
	//   dir1/b.less
	//   a.styl
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	writeFile(t, filepath.Join(tmpDir, ".hidden.js"), "hidden")
	writeFile(t, filepath.Join(tmpDir, "ignored", "file.js"), "ignored")
	writeFile(t, filepath.Join(tmpDir, "out", "a.1234.js"), "built")
	writeFile(t, filepath.Join(tmpDir, "dir1", "b.less"), "b")
	writeFile(t, filepath.Join(tmpDir, "a.styl"), "a")

	walker := fs.NewWalker()
	ignores := []string{"ignored", filepath.Join(tmpDir, "out")}

	var names []string
	for name := range walker.WalkAssets(tmpDir, ignores) {
		names = append(names, name)
	}
	slices.Sort(names)

	assert.Equal(t, []string{"a.styl", "dir1/b.less"}, names)
}

func TestWalker_WalkAssets_MissingRoot(t *testing.T) {
	walker := fs.NewWalker()

	count := 0
	for range walker.WalkAssets(filepath.Join(t.TempDir(), "missing"), nil) {
		count++
	}
	assert.Zero(t, count)
}

func TestWalker_WalkAssets_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.js"), "a")
	writeFile(t, filepath.Join(tmpDir, "b.js"), "b")

	count := 0
	for range fs.NewWalker().WalkAssets(tmpDir, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, fs.EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	writeFile(t, filepath.Join(dir, "a.css"), "a")
	require.NoError(t, fs.RemoveAll(dir))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// Removing a missing directory is not an error.
	require.NoError(t, fs.RemoveAll(dir))
}
