package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yaac/internal/adapters/cas"
	"go.trai.ch/yaac/internal/adapters/detector"
	"go.trai.ch/yaac/internal/adapters/fs"
	"go.trai.ch/yaac/internal/adapters/metrics"
	"go.trai.ch/yaac/internal/adapters/watcher"
	"go.trai.ch/yaac/internal/app"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/yaac/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type testEnv struct {
	root   string
	assets string
	cfg    *domain.Config
	app    *app.App
}

func newTestEnv(t *testing.T, files map[string]string) *testEnv {
	t.Helper()

	root := t.TempDir()
	cfg := domain.DefaultConfig(root)
	cfg.Ignore = []string{"_*"}
	for name, content := range files {
		writeFile(t, filepath.Join(cfg.SearchPath[0], filepath.FromSlash(name)), content)
	}

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(root).Return(cfg, nil).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	watchers := watcher.Factory(func() (ports.Watcher, error) {
		return watcher.NewWatcher(log)
	})

	a := app.New(loader, log, fs.NewLocator(), fs.NewWalker(), cas.NewStore(),
		metrics.NewPrometheusRecorder(nil), watchers).
		WithWorkDir(root).
		WithDebounceWindow(10 * time.Millisecond).
		WithModeDetector(detector.FixedMode(domain.ModeDevelopment))

	return &testEnv{root: root, assets: cfg.SearchPath[0], cfg: cfg, app: a}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readManifest(t *testing.T, dest string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(domain.ManifestPath(dest))
	if err != nil {
		return nil
	}
	var entries map[string]string
	require.NoError(t, json.Unmarshal(data, &entries))
	return entries
}

func TestApp_Resolve(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"app.js":      "//= require lib/util\nvar app;\n",
		"lib/util.js": "var util;\n",
	})

	results, err := env.app.Resolve(context.Background(), []string{"app.js", "app.js"}, app.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, strings.HasPrefix(results[0].URL, "/static/app."))
	assert.True(t, strings.HasSuffix(results[0].URL, ".js"))
	assert.Equal(t, domain.OutcomeCompiled, results[0].Outcome)
	assert.Equal(t, domain.OutcomeFresh, results[1].Outcome)
	assert.Equal(t, results[0].URL, results[1].URL)

	out, err := os.ReadFile(filepath.Join(env.cfg.Dest, strings.TrimPrefix(results[0].URL, "/static/")))
	require.NoError(t, err)
	assert.Equal(t, "var util;\nvar app;\n", string(out))
}

func TestApp_Resolve_Production(t *testing.T) {
	env := newTestEnv(t, map[string]string{"app.css": "body{}"})

	results, err := env.app.Resolve(context.Background(), []string{"app.css", "app.css"},
		app.ResolveOptions{Production: true})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, domain.OutcomeCompiled, results[0].Outcome)
	assert.Equal(t, domain.OutcomeCached, results[1].Outcome)
	assert.Empty(t, results[1].Operations)
}

func TestApp_Resolve_ProductionMinifiesScripts(t *testing.T) {
	source := "var answer = 42;\n\nvar question = answer;\n"
	env := newTestEnv(t, map[string]string{"app.js": source})

	dev, err := env.app.Resolve(context.Background(), []string{"app.js"}, app.ResolveOptions{})
	require.NoError(t, err)
	prod, err := env.app.Resolve(context.Background(), []string{"app.js"}, app.ResolveOptions{Production: true})
	require.NoError(t, err)

	read := func(url string) string {
		out, err := os.ReadFile(filepath.Join(env.cfg.Dest, strings.TrimPrefix(url, "/static/")))
		require.NoError(t, err)
		return string(out)
	}

	assert.Equal(t, source, read(dev[0].URL))
	minified := read(prod[0].URL)
	assert.NotContains(t, minified, "\n\n")
	assert.Less(t, len(minified), len(source))
	assert.NotEqual(t, dev[0].URL, prod[0].URL)
}

func TestApp_Resolve_JoinsErrors(t *testing.T) {
	env := newTestEnv(t, map[string]string{"app.css": "body{}"})

	results, err := env.app.Resolve(context.Background(), []string{"missing.css", "app.css", "../escape.css"},
		app.ResolveOptions{})
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrAssetNotFound.Error())
	require.ErrorContains(t, err, domain.ErrInvalidAssetName.Error())

	require.Len(t, results, 1)
	assert.Equal(t, "app.css", results[0].Name)
}

func TestApp_Resolve_ConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("/nowhere").Return(nil, errors.New("boom"))

	a := app.New(loader, mocks.NewMockLogger(ctrl), fs.NewLocator(), fs.NewWalker(), cas.NewStore(),
		metrics.NewPrometheusRecorder(nil), nil).WithWorkDir("/nowhere")

	_, err := a.Resolve(context.Background(), []string{"app.css"}, app.ResolveOptions{})
	require.ErrorContains(t, err, "failed to load configuration")
	require.ErrorContains(t, err, "boom")
}

func TestApp_Build(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"app.css":       "body{}",
		"_partial.less": "@c: red;",
		"img/logo.png":  "\x89PNG",
	})

	report, err := env.app.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, domain.ManifestPath(env.cfg.Dest), report.Manifest)
	assert.Len(t, report.Assets, 2)
	assert.Contains(t, report.Assets, "app.css")
	assert.Contains(t, report.Assets, "img/logo.png")
	assert.NotContains(t, report.Assets, "_partial.less")

	assert.Equal(t, report.Assets, readManifest(t, env.cfg.Dest))
	for _, url := range report.Assets {
		assert.FileExists(t, filepath.Join(env.cfg.Dest, filepath.FromSlash(strings.TrimPrefix(url, "/static/"))))
	}
}

func TestApp_Build_ShadowedNamesBuildOnce(t *testing.T) {
	env := newTestEnv(t, map[string]string{"app.css": "first"})
	second := filepath.Join(env.root, "vendor")
	writeFile(t, filepath.Join(second, "app.css"), "second")
	writeFile(t, filepath.Join(second, "vendor.css"), "vendor")
	env.cfg.SearchPath = append(env.cfg.SearchPath, second)

	report, err := env.app.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Assets, 2)

	url := report.Assets["app.css"]
	out, err := os.ReadFile(filepath.Join(env.cfg.Dest, strings.TrimPrefix(url, "/static/")))
	require.NoError(t, err)
	assert.Equal(t, "first", string(out))
}

func TestApp_Build_ReportsFailures(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"app.css":    "body{}",
		"broken.js":  "//= require nope\n",
		"another.js": "var ok;\n",
	})

	report, err := env.app.Build(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrBuildFailed.Error())

	assert.Equal(t, 1, report.Failed)
	assert.Len(t, report.Assets, 2)
	assert.NotContains(t, readManifest(t, env.cfg.Dest), "broken.js")
}

func TestApp_Clean(t *testing.T) {
	env := newTestEnv(t, map[string]string{"app.css": "body{}"})

	_, err := env.app.Build(context.Background())
	require.NoError(t, err)
	require.DirExists(t, env.cfg.Dest)

	require.NoError(t, env.app.Clean(context.Background()))
	assert.NoDirExists(t, env.cfg.Dest)

	// Cleaning twice is not an error.
	require.NoError(t, env.app.Clean(context.Background()))
}

func TestApp_Watch(t *testing.T) {
	env := newTestEnv(t, map[string]string{"app.css": "body{}"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.app.Watch(ctx) }()

	require.Eventually(t, func() bool {
		return readManifest(t, env.cfg.Dest)["app.css"] != ""
	}, 5*time.Second, 10*time.Millisecond)
	before := readManifest(t, env.cfg.Dest)["app.css"]

	// The watcher may still be starting, so keep changing files until the
	// rebuild shows up in the manifest.
	i := 0
	require.Eventually(t, func() bool {
		i++
		writeFile(t, filepath.Join(env.assets, "app.css"), "body{color:red}"+strings.Repeat(" ", i))
		writeFile(t, filepath.Join(env.assets, "late.css"), "p{}")
		m := readManifest(t, env.cfg.Dest)
		return m["app.css"] != before && m["late.css"] != ""
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestApp_Serve(t *testing.T) {
	env := newTestEnv(t, map[string]string{"app.css": "body{}"})

	ctx, cancel := context.WithCancel(context.Background())
	addrs := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- env.app.Serve(ctx, app.ServeOptions{
			Addr:     "127.0.0.1:0",
			OnListen: func(addr string) { addrs <- addr },
		})
	}()

	var addr string
	select {
	case addr = <-addrs:
	case err := <-done:
		t.Fatalf("serve stopped early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	url := readManifest(t, env.cfg.Dest)["app.css"]
	require.NotEmpty(t, url)

	assert.Equal(t, "body{}", get(t, "http://"+addr+url))
	assert.Contains(t, get(t, "http://"+addr+"/metrics"), "yaac_resolve_total")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestApp_Serve_ListenError(t *testing.T) {
	env := newTestEnv(t, map[string]string{"app.css": "body{}"})

	err := env.app.Serve(context.Background(), app.ServeOptions{Addr: "invalid-address"})
	require.ErrorContains(t, err, domain.ErrServerFailed.Error())
}

func TestApp_ConfigureLogging(t *testing.T) {
	env := newTestEnv(t, nil)

	require.NoError(t, env.app.ConfigureLogging("auto"))
	require.NoError(t, env.app.ConfigureLogging("json"))
	err := env.app.ConfigureLogging("xml")
	require.ErrorContains(t, err, domain.ErrInvalidLogFormat.Error())
}

func get(t *testing.T, url string) string {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
