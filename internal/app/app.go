// Package app implements the yaac use cases on top of the asset pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/yaac/internal/adapters/cas"
	"go.trai.ch/yaac/internal/adapters/detector"
	"go.trai.ch/yaac/internal/adapters/dialect"
	"go.trai.ch/yaac/internal/adapters/digest"
	"go.trai.ch/yaac/internal/adapters/fs"
	"go.trai.ch/yaac/internal/adapters/logger"
	"go.trai.ch/yaac/internal/adapters/metrics"
	"go.trai.ch/yaac/internal/adapters/telemetry"
	"go.trai.ch/yaac/internal/adapters/watcher"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/yaac/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName      = "yaac"
	shutdownTimeout = 5 * time.Second
	readTimeout     = 5 * time.Second
)

// jsonSwitcher is implemented by loggers that can change their output format.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	locator      ports.SourceLocator
	walker       *fs.Walker
	store        *cas.Store
	metrics      *metrics.PrometheusRecorder
	watchers     watcher.Factory

	workDir        string
	debounceWindow time.Duration
	mode           ports.ModeDetector
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	locator ports.SourceLocator,
	walker *fs.Walker,
	store *cas.Store,
	recorder *metrics.PrometheusRecorder,
	watchers watcher.Factory,
) *App {
	return &App{
		configLoader:   loader,
		logger:         log,
		locator:        locator,
		walker:         walker,
		store:          store,
		metrics:        recorder,
		watchers:       watchers,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithWorkDir makes the App discover its configuration from dir instead of
// the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithDebounceWindow changes how long watch mode waits for changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// WithModeDetector replaces the environment based deployment mode detection.
func (a *App) WithModeDetector(mode ports.ModeDetector) *App {
	a.mode = mode
	return a
}

// ConfigureLogging applies a --log-format value to the logger.
func (a *App) ConfigureLogging(format string) error {
	f, err := logger.ParseFormat(format)
	if err != nil {
		return err
	}

	useJSON := f == logger.FormatJSON || (f == logger.FormatAuto && !detector.Interactive())
	if s, ok := a.logger.(jsonSwitcher); ok {
		s.SetJSON(useJSON)
	}
	return nil
}

// EnableSpanLogging reports every pipeline span through the logger.
// The returned function flushes and stops span reporting.
func (a *App) EnableSpanLogging() func(context.Context) error {
	return telemetry.InstallLogProvider(a.logger)
}

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	// Production forces the production fast path for repeated names.
	Production bool
}

// Resolve resolves each name in order. Every name is attempted; the errors
// of failed names are joined.
func (a *App) Resolve(ctx context.Context, names []string, opts ResolveOptions) ([]domain.Resolution, error) {
	_, p, err := a.prepare(opts.Production)
	if err != nil {
		return nil, err
	}

	var (
		results []domain.Resolution
		errs    error
	)
	for _, name := range names {
		res, err := p.Resolve(ctx, name)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errs
}

// BuildReport summarises a full build.
type BuildReport struct {
	Dest     string
	Manifest string
	Assets   map[string]string
	Failed   int
}

// Build resolves every file below the search roots, one after another, and
// writes the manifest of their URLs into the output directory.
func (a *App) Build(ctx context.Context) (BuildReport, error) {
	cfg, p, err := a.prepare(false)
	if err != nil {
		return BuildReport{}, err
	}
	return a.buildAll(ctx, cfg, p)
}

func (a *App) buildAll(ctx context.Context, cfg *domain.Config, p *pipeline.Pipeline) (BuildReport, error) {
	report := BuildReport{Dest: cfg.Dest, Manifest: domain.ManifestPath(cfg.Dest)}

	ignores := append([]string{cfg.Dest}, cfg.Ignore...)
	seen := make(map[string]struct{})
	for _, root := range cfg.SearchPath {
		for name := range a.walker.WalkAssets(root, ignores) {
			// Earlier roots shadow later ones, so a name is built once.
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}

			if _, err := p.Resolve(ctx, name); err != nil {
				report.Failed++
				a.logger.Error(err)
			}
		}
	}

	report.Assets = p.Entries()
	if err := a.store.WriteManifest(cfg.Dest, report.Assets); err != nil {
		return report, err
	}

	if report.Failed > 0 {
		return report, zerr.With(domain.ErrBuildFailed, "failed", report.Failed)
	}
	a.logger.Info(fmt.Sprintf("built %d assets into %s", len(report.Assets), cfg.Dest))
	return report, nil
}

// Watch builds every asset, then rebuilds affected assets whenever a source
// below the search roots changes. It returns when ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	cfg, p, err := a.prepare(false)
	if err != nil {
		return err
	}
	// Failures are reported and retried on the next change.
	_, _ = a.buildAll(ctx, cfg, p)

	return a.watch(ctx, cfg, p, nil)
}

func (a *App) watch(ctx context.Context, cfg *domain.Config, p *pipeline.Pipeline, ready chan<- struct{}) error {
	w, err := a.watchers()
	if err != nil {
		return err
	}
	if err := w.Start(ctx, cfg.SearchPath...); err != nil {
		_ = w.Stop()
		return err
	}

	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		a.rebuild(ctx, cfg, p, paths)
	})
	defer debouncer.Stop()

	go func() {
		<-ctx.Done()
		_ = w.Stop()
	}()

	a.logger.Info("watching " + strings.Join(cfg.SearchPath, ", "))
	if ready != nil {
		close(ready)
	}

	for event := range w.Events() {
		if within(cfg.Dest, event.Path) {
			continue
		}
		debouncer.Add(event.Path)
	}
	return nil
}

// rebuild re-resolves the cached assets depending on paths and any new source
// file among them, then refreshes the manifest.
func (a *App) rebuild(ctx context.Context, cfg *domain.Config, p *pipeline.Pipeline, paths []string) {
	names := p.Affected(paths)
	for _, path := range paths {
		if name, ok := a.assetName(cfg, path); ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	for _, name := range names {
		if _, err := p.Resolve(ctx, name); err != nil {
			a.logger.Error(err)
		}
	}

	if len(names) > 0 {
		if err := a.store.WriteManifest(cfg.Dest, p.Entries()); err != nil {
			a.logger.Error(err)
		}
	}
}

// assetName maps a changed file to its logical name if it is a buildable
// source not shadowed by an earlier search root.
func (a *App) assetName(cfg *domain.Config, path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}

	for _, root := range cfg.SearchPath {
		if !within(root, path) {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", false
		}
		name := filepath.ToSlash(rel)
		for _, pattern := range cfg.Ignore {
			if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
				return "", false
			}
		}
		src, err := a.locator.Locate(name, cfg.SearchPath)
		if err != nil || src.Path != path {
			return "", false
		}
		return name, true
	}
	return "", false
}

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	Addr string
	// OnListen is called with the bound address once the server accepts connections.
	OnListen func(addr string)
}

// Serve builds, watches and serves the output directory under the URL prefix
// together with Prometheus metrics at /metrics.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	cfg, p, err := a.prepare(false)
	if err != nil {
		return err
	}
	_, _ = a.buildAll(ctx, cfg, p)

	handler := a.handler(cfg)

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", opts.Addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", opts.Addr)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: readTimeout}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, domain.ErrServerFailed.Error())
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return a.watch(ctx, cfg, p, nil)
	})

	a.logger.Info(fmt.Sprintf("serving %s at http://%s%s", cfg.Dest, ln.Addr(), urlPath(cfg.URLPrefix)))
	if opts.OnListen != nil {
		opts.OnListen(ln.Addr().String())
	}

	return g.Wait()
}

func (a *App) handler(cfg *domain.Config) http.Handler {
	prefix := urlPath(cfg.URLPrefix)
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	mux := http.NewServeMux()
	mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Dest))))
	if prefix != "/metrics/" {
		mux.Handle("/metrics", a.metrics.Handler())
	}
	return mux
}

// Clean removes the output directory.
func (a *App) Clean(_ context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	if err := fs.RemoveAll(cfg.Dest); err != nil {
		return err
	}
	a.logger.Info("removed " + cfg.Dest)
	return nil
}

func (a *App) loadConfig() (*domain.Config, error) {
	dir := a.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		}
		dir = wd
	}

	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// prepare loads the configuration and assembles a pipeline for it.
func (a *App) prepare(production bool) (*domain.Config, *pipeline.Pipeline, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	mode := a.mode
	switch {
	case production:
		mode = detector.FixedMode(domain.ModeProduction)
	case mode == nil:
		mode = detector.NewEnvMode(cfg.ModeEnv)
	}

	// Scripts and stylesheets are minified while the mode is production.
	dialects, err := dialect.Build(cfg.Compilers, dialect.WithMinify(func() bool {
		return mode.Mode().IsProduction()
	}))
	if err != nil {
		return nil, nil, err
	}

	digester, err := digest.New(cfg.Digest)
	if err != nil {
		return nil, nil, err
	}

	p := pipeline.New(cfg, pipeline.Deps{
		Locator:  a.locator,
		Registry: pipeline.NewRegistry(dialects, dialect.Passthrough()),
		Digester: digester,
		Store:    a.store,
		Mode:     mode,
		Tracer:   telemetry.NewOTelTracer(tracerName),
		Metrics:  a.metrics,
		Logger:   a.logger,
	})
	return cfg, p, nil
}

// urlPath returns the path component of a URL prefix, which may be a full
// URL when assets are published to a CDN.
func urlPath(prefix string) string {
	u, err := url.Parse(prefix)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
