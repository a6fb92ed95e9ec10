package config_test

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yaac/internal/adapters/config"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const fsRoot = "/work"

type fakeEnv map[string]string

func (e fakeEnv) lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

func (e fakeEnv) set(key, value string) error {
	e[key] = value
	return nil
}

func newTestLoader(t *testing.T, files fstest.MapFS, env fakeEnv) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	loader.FS = config.NewMapFSAdapter(fsRoot, files)
	loader.LookupEnv = env.lookup
	loader.Setenv = env.set
	return loader
}

func TestLoader_Defaults(t *testing.T) {
	cwd := filepath.Join(fsRoot, "site")
	loader := newTestLoader(t, fstest.MapFS{}, fakeEnv{})

	cfg, err := loader.Load(cwd)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(cwd), cfg)
}

func TestLoader_DiscoversUpward(t *testing.T) {
	files := fstest.MapFS{
		"site/yaac.yaml": &fstest.MapFile{Data: []byte(`
version: "1"
searchPath:
  - assets
  - vendor/assets
  - /opt/shared
dest: public/built
urlPrefix: https://cdn.example.com/
modeEnv: APP_ENV
digest: sha256
compilers:
  .js: copy
  .markdown: markdown
ignore:
  - "_*"
`)},
		"site/pages/about/.keep": &fstest.MapFile{},
	}
	loader := newTestLoader(t, files, fakeEnv{})

	cfg, err := loader.Load(filepath.Join(fsRoot, "site", "pages", "about"))
	require.NoError(t, err)

	root := filepath.Join(fsRoot, "site")
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, []string{
		filepath.Join(root, "assets"),
		filepath.Join(root, "vendor", "assets"),
		"/opt/shared",
	}, cfg.SearchPath)
	assert.Equal(t, filepath.Join(root, "public", "built"), cfg.Dest)
	assert.Equal(t, "https://cdn.example.com/", cfg.URLPrefix)
	assert.Equal(t, "APP_ENV", cfg.ModeEnv)
	assert.Equal(t, "sha256", cfg.Digest)
	assert.Equal(t, domain.DialectCopy, cfg.Compilers[".js"])
	assert.Equal(t, domain.DialectMarkdown, cfg.Compilers[".markdown"])
	assert.Equal(t, domain.DialectLess, cfg.Compilers[".less"])
	assert.Equal(t, []string{"_*"}, cfg.Ignore)
}

func TestLoader_PartialConfigKeepsDefaults(t *testing.T) {
	files := fstest.MapFS{
		"yaac.yaml": &fstest.MapFile{Data: []byte("dest: out\n")},
	}
	loader := newTestLoader(t, files, fakeEnv{})

	cfg, err := loader.Load(fsRoot)
	require.NoError(t, err)

	want := domain.DefaultConfig(fsRoot)
	want.Dest = filepath.Join(fsRoot, "out")
	assert.Equal(t, want, cfg)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "empty url prefix",
			content: "urlPrefix: \"\"\n",
			wantErr: domain.ErrInvalidURLPrefix,
		},
		{
			name:    "empty search path entry",
			content: "searchPath: [\"\"]\n",
			wantErr: domain.ErrEmptySearchPath,
		},
		{
			name:    "malformed yaml",
			content: "searchPath: [unclosed\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "wrong type",
			content: "compilers: [less]\n",
			wantErr: domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := fstest.MapFS{"yaac.yaml": &fstest.MapFile{Data: []byte(tt.content)}}
			loader := newTestLoader(t, files, fakeEnv{})

			_, err := loader.Load(fsRoot)
			require.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoader_WarnsOnUnknownVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	loader := config.NewLoader(log)
	loader.FS = config.NewMapFSAdapter(fsRoot, fstest.MapFS{
		"yaac.yaml": &fstest.MapFile{Data: []byte("version: \"2\"\n")},
	})

	_, err := loader.Load(fsRoot)
	require.NoError(t, err)
}

func TestLoader_EnvFiles(t *testing.T) {
	files := fstest.MapFS{
		"yaac.yaml":  &fstest.MapFile{Data: []byte("dest: out\n")},
		".env":       &fstest.MapFile{Data: []byte("YAAC_ENV=production\nEXISTING=from-file\n# comment\n")},
		".env.local": &fstest.MapFile{Data: []byte("YAAC_ENV=development\nLOCAL_ONLY=\"quoted value\"\n")},
	}
	env := fakeEnv{"EXISTING": "from-process"}
	loader := newTestLoader(t, files, env)

	_, err := loader.Load(filepath.Join(fsRoot))
	require.NoError(t, err)

	assert.Equal(t, "production", env["YAAC_ENV"], ".env wins over .env.local")
	assert.Equal(t, "from-process", env["EXISTING"], "process environment is not overridden")
	assert.Equal(t, "quoted value", env["LOCAL_ONLY"])
}

func TestLoader_EnvFileWithoutConfig(t *testing.T) {
	files := fstest.MapFS{
		".env": &fstest.MapFile{Data: []byte("APP_MODE=production\n")},
	}
	env := fakeEnv{}
	loader := newTestLoader(t, files, env)

	_, err := loader.Load(fsRoot)
	require.NoError(t, err)
	assert.Equal(t, "production", env["APP_MODE"])
}

func TestLoader_InvalidEnvFile(t *testing.T) {
	files := fstest.MapFS{
		".env": &fstest.MapFile{Data: []byte("KEY=\"unterminated\n")},
	}
	loader := newTestLoader(t, files, fakeEnv{})

	_, err := loader.Load(fsRoot)
	require.ErrorContains(t, err, domain.ErrEnvFileLoadFailed.Error())
}
