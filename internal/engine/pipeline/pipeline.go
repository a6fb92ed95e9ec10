// Package pipeline resolves logical asset names to content-addressed URLs,
// compiling sources only when their dependency set changed.
package pipeline

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Deps holds the collaborators of a Pipeline. Every field is required.
type Deps struct {
	Locator  ports.SourceLocator
	Registry *Registry
	Digester ports.Digester
	Store    ports.OutputStore
	Mode     ports.ModeDetector
	Tracer   ports.Tracer
	Metrics  ports.MetricsRecorder
	Logger   ports.Logger
}

// Pipeline is the orchestrator behind ResolveAsset. Each Pipeline owns its
// cache; pipelines never share state.
type Pipeline struct {
	searchPath []string
	dest       string
	urlPrefix  string

	locator  ports.SourceLocator
	registry *Registry
	digester ports.Digester
	store    ports.OutputStore
	mode     ports.ModeDetector
	tracer   ports.Tracer
	metrics  ports.MetricsRecorder
	logger   ports.Logger

	cache *Cache
	// calls serialises resolutions of the same name.
	calls singleflight.Group
}

// New creates a Pipeline for cfg.
func New(cfg *domain.Config, deps Deps) *Pipeline {
	return &Pipeline{
		searchPath: cfg.SearchPath,
		dest:       cfg.Dest,
		urlPrefix:  cfg.URLPrefix,
		locator:    deps.Locator,
		registry:   deps.Registry,
		digester:   deps.Digester,
		store:      deps.Store,
		mode:       deps.Mode,
		tracer:     deps.Tracer,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		cache:      NewCache(),
	}
}

// ResolveAsset returns the URL of the compiled form of name.
func (p *Pipeline) ResolveAsset(name string) (string, error) {
	res, err := p.Resolve(context.Background(), name)
	if err != nil {
		return "", err
	}
	return res.URL, nil
}

// FuncMap exposes ResolveAsset to html/template as "asset".
func (p *Pipeline) FuncMap() template.FuncMap {
	return template.FuncMap{"asset": p.ResolveAsset}
}

// Resolve resolves name and reports the operations it performed. Concurrent
// calls for the same name share one resolution.
func (p *Pipeline) Resolve(ctx context.Context, name string) (domain.Resolution, error) {
	v, err, _ := p.calls.Do(name, func() (any, error) {
		return p.resolve(ctx, name)
	})
	res, _ := v.(domain.Resolution)
	return res, err
}

// Entries returns the URL of every cached asset keyed by logical name.
func (p *Pipeline) Entries() map[string]string {
	snapshot := p.cache.Snapshot()
	urls := make(map[string]string, len(snapshot))
	for name, entry := range snapshot {
		urls[name] = entry.CompiledURL
	}
	return urls
}

// Affected returns the sorted names of cached assets that depend on any of paths.
func (p *Pipeline) Affected(paths []string) []string {
	changed := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		changed[path] = struct{}{}
	}

	snapshot := p.cache.Snapshot()
	var names []string
	for _, name := range p.cache.Names() {
		entry, ok := snapshot[name]
		if !ok {
			continue
		}
		for _, dep := range entry.Deps {
			if _, hit := changed[dep.Path]; hit {
				names = append(names, name)
				break
			}
		}
	}
	return names
}

// Cache exposes the pipeline's cache for inspection.
func (p *Pipeline) Cache() *Cache {
	return p.cache
}

func (p *Pipeline) resolve(ctx context.Context, name string) (domain.Resolution, error) {
	ctx, span := p.tracer.Start(ctx, "resolve")
	defer span.End()
	span.SetAttribute("asset", name)

	res := domain.Resolution{Name: name}
	err := p.run(ctx, &res)
	if err != nil {
		res.Outcome = domain.OutcomeError
		span.RecordError(err)
	} else {
		span.SetAttribute("url", res.URL)
	}
	span.SetAttribute("outcome", string(res.Outcome))
	p.metrics.IncResolve(res.Outcome)

	return res, err
}

func (p *Pipeline) run(ctx context.Context, res *domain.Resolution) error {
	entry, cached := p.cache.Get(res.Name)

	if cached && p.mode.Mode().IsProduction() {
		res.URL = entry.CompiledURL
		res.Outcome = domain.OutcomeCached
		return nil
	}

	src, deps, dialect, err := p.findDeps(ctx, res)
	if err != nil {
		return err
	}

	if cached {
		res.Operations = append(res.Operations, domain.OpCompare)
		if !p.compare(ctx, entry.Deps, deps) {
			res.URL = entry.CompiledURL
			res.Outcome = domain.OutcomeFresh
			return nil
		}
	}

	res.Operations = append(res.Operations, domain.OpCompile)
	entry, err = p.compile(ctx, res.Name, src, deps, dialect)
	if err != nil {
		return err
	}

	p.cache.Put(res.Name, entry)
	res.URL = entry.CompiledURL
	res.Outcome = domain.OutcomeCompiled
	p.logger.Info(fmt.Sprintf("compiled %s -> %s", res.Name, entry.CompiledURL))

	return nil
}

// findDeps locates the source and scans its dependency set.
func (p *Pipeline) findDeps(
	ctx context.Context,
	res *domain.Resolution,
) (domain.Source, []domain.Dependency, ports.Dialect, error) {
	_, span := p.tracer.Start(ctx, string(domain.OpFindDeps))
	defer span.End()

	src, err := p.locator.Locate(res.Name, p.searchPath)
	if err != nil {
		span.RecordError(err)
		return domain.Source{}, nil, ports.Dialect{}, err
	}
	res.Operations = append(res.Operations, domain.OpFindDeps)

	dialect := p.registry.Lookup(src.Path)
	span.SetAttribute("dialect", dialect.Name)

	if dialect.Scanner == nil {
		return src, []domain.Dependency{src.Dependency()}, dialect, nil
	}

	deps, err := dialect.Scanner.Scan(src.Path, src.ModifiedAt, nil)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrScanFailed.Error()), "asset", res.Name)
		span.RecordError(err)
		return domain.Source{}, nil, ports.Dialect{}, err
	}
	span.SetAttribute("deps", len(deps))

	return src, deps, dialect, nil
}

func (p *Pipeline) compare(ctx context.Context, cached, fresh []domain.Dependency) bool {
	_, span := p.tracer.Start(ctx, string(domain.OpCompare))
	defer span.End()

	stale := IsStale(cached, fresh)
	span.SetAttribute("stale", stale)
	return stale
}

// compile builds a new cache entry. The output file is written before the
// entry is returned, so a failure leaves the previous entry in place.
func (p *Pipeline) compile(
	ctx context.Context,
	name string,
	src domain.Source,
	deps []domain.Dependency,
	dialect ports.Dialect,
) (*domain.CacheEntry, error) {
	ctx, span := p.tracer.Start(ctx, string(domain.OpCompile))
	defer span.End()
	span.SetAttribute("dialect", dialect.Name)

	var content []byte
	if dep, ok := domain.FindDependency(deps, src.Path); ok {
		content = dep.Content
	}

	start := time.Now()
	out, err := dialect.Compiler.Compile(ctx, src.Path, content)
	p.metrics.ObserveCompile(dialect.Name, time.Since(start), err)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "asset", name)
		span.RecordError(err)
		return nil, err
	}

	outputName := OutputName(name, p.digester.Digest(out), dialect.OutputExt)
	entry := &domain.CacheEntry{
		SourcePath:   src.Path,
		CompiledPath: OutputPath(p.dest, outputName),
		CompiledURL:  OutputURL(p.urlPrefix, outputName),
		Deps:         deps,
	}

	if err := p.store.Put(entry.CompiledPath, out); err != nil {
		err = zerr.With(err, "asset", name)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("bytes", len(out))

	return entry, nil
}
