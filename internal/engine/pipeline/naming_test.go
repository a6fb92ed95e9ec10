package pipeline_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/yaac/internal/engine/pipeline"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name      string
		asset     string
		outputExt string
		want      string
	}{
		{"mapped extension", "app.less", ".css", "app.abc123.css"},
		{"kept extension", "logo.png", "", "logo.abc123.png"},
		{"nested", "js/vendor/lib.js", ".js", "js/vendor/lib.abc123.js"},
		{"no extension", "LICENSE", "", "LICENSE.abc123"},
		{"dotted directory", "v1.2/readme", "", "v1.2/readme.abc123"},
		{"double extension", "theme.min.styl", ".css", "theme.min.abc123.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pipeline.OutputName(tt.asset, "abc123", tt.outputExt))
		})
	}
}

func TestOutputPathAndURL(t *testing.T) {
	name := "js/lib.abc.js"

	assert.Equal(t, filepath.Join("out", "js", "lib.abc.js"), pipeline.OutputPath("out", name))
	assert.Equal(t, "/static/js/lib.abc.js", pipeline.OutputURL("/static/", name))
	assert.Equal(t, "https://cdn.example.com/a/js/lib.abc.js", pipeline.OutputURL("https://cdn.example.com/a/", name))
}
