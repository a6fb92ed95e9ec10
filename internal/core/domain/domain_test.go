package domain_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/yaac/internal/core/domain"
)

func TestLatestModification(t *testing.T) {
	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		deps []domain.Dependency
		want time.Time
	}{
		{
			name: "empty",
			deps: nil,
			want: time.Time{},
		},
		{
			name: "single",
			deps: []domain.Dependency{{Path: "/a", ModifiedAt: base}},
			want: base,
		},
		{
			name: "order independent",
			deps: []domain.Dependency{
				{Path: "/a", ModifiedAt: base.Add(time.Minute)},
				{Path: "/b", ModifiedAt: base.Add(time.Hour)},
				{Path: "/c", ModifiedAt: base},
			},
			want: base.Add(time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(domain.LatestModification(tt.deps)))
		})
	}
}

func TestFindDependency(t *testing.T) {
	deps := []domain.Dependency{
		{Path: "/a.js"},
		{Path: "/b.js", Content: []byte("b")},
	}

	dep, ok := domain.FindDependency(deps, "/b.js")
	assert.True(t, ok)
	assert.Equal(t, []byte("b"), dep.Content)

	_, ok = domain.FindDependency(deps, "/c.js")
	assert.False(t, ok)
}

func TestParseDeploymentMode(t *testing.T) {
	tests := []struct {
		value string
		want  domain.DeploymentMode
	}{
		{"production", domain.ModeProduction},
		{"PRODUCTION", domain.ModeProduction},
		{" production ", domain.ModeProduction},
		{"", domain.ModeDevelopment},
		{"development", domain.ModeDevelopment},
		{"prod", domain.ModeDevelopment},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := domain.ParseDeploymentMode(tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == domain.ModeProduction, got.IsProduction())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	root := filepath.Join("/", "srv", "site")
	cfg := domain.DefaultConfig(root)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, []string{filepath.Join(root, "assets")}, cfg.SearchPath)
	assert.Equal(t, filepath.Join(root, "builtAssets"), cfg.Dest)
	assert.Equal(t, "/static/", cfg.URLPrefix)
	assert.Equal(t, "YAAC_ENV", cfg.ModeEnv)
	assert.Equal(t, "md5", cfg.Digest)
	assert.Equal(t, domain.DialectLess, cfg.Compilers[".less"])
}

func TestMergeCompilers(t *testing.T) {
	merged := domain.MergeCompilers(map[string]string{
		".js":  domain.DialectCopy,
		".css": domain.DialectCopy,
	})

	assert.Equal(t, domain.DialectCopy, merged[".js"])
	assert.Equal(t, domain.DialectCopy, merged[".css"])
	assert.Equal(t, domain.DialectStylus, merged[".styl"])

	// Defaults are not mutated by a merge.
	assert.Equal(t, domain.DialectBundle, domain.DefaultCompilers()[".js"])
}

func TestManifestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "manifest.json"), domain.ManifestPath("out"))
}
