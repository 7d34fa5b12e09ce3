package resolve

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pypin/pkg/dates"
	"github.com/matzehuels/pypin/pkg/errors"
	"github.com/matzehuels/pypin/pkg/integrations"
	"github.com/matzehuels/pypin/pkg/observability"
	"github.com/matzehuels/pypin/pkg/release"
)

// Fetcher retrieves the full release history of a package.
type Fetcher interface {
	FetchReleases(ctx context.Context, name string) (release.Set, error)
}

// Result is the outcome of a successful resolution.
type Result struct {
	Package    string     // Normalized package name
	Date       dates.Date // Target day
	Version    string     // Winning version
	UploadedAt time.Time  // Upload instant of the winning file
}

// Options configures a Resolver.
type Options struct {
	Cache  *ResultCache // Result cache (default: a fresh one)
	Logger *log.Logger  // Debug logging (default: log.Default())
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Cache == nil {
		opts.Cache = NewResultCache()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return opts
}

type fetched struct {
	set release.Set
	err error
}

// Resolver maps (package, date) to the version that was latest on that date.
type Resolver struct {
	fetcher  Fetcher
	cache    *ResultCache
	releases map[string]fetched
	logger   *log.Logger
}

// NewResolver creates a Resolver backed by fetcher.
func NewResolver(fetcher Fetcher, opts Options) *Resolver {
	opts = opts.WithDefaults()
	return &Resolver{
		fetcher:  fetcher,
		cache:    opts.Cache,
		releases: make(map[string]fetched),
		logger:   opts.Logger,
	}
}

// Cache returns the resolver's result cache.
func (r *Resolver) Cache() *ResultCache { return r.cache }

// Resolve returns the newest version of pkg uploaded at or before midnight
// UTC on date.
//
// A package without any qualifying upload yields NO_QUALIFYING_RELEASE;
// fetch failures carry the fetcher's error codes. Both are cached, so
// repeating a failed query returns the same error without another request.
// If ctx is cancelled the context error is returned and nothing is cached.
func (r *Resolver) Resolve(ctx context.Context, pkg string, date dates.Date) (Result, error) {
	q := Query{Package: integrations.NormalizePkgName(pkg), Date: date}
	hooks := observability.Resolve()
	cacheHooks := observability.Cache()

	if res, err, ok := r.cache.Get(q); ok {
		cacheHooks.OnCacheHit(ctx, "result")
		return res, err
	}
	cacheHooks.OnCacheMiss(ctx, "result")

	start := time.Now()
	hooks.OnResolveStart(ctx, q.Package, date.String())

	res, err := r.resolve(ctx, q)
	hooks.OnResolveComplete(ctx, q.Package, date.String(), res.Version, time.Since(start), err)

	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	r.cache.Put(q, res, err)
	cacheHooks.OnCacheSet(ctx, "result", 1)
	return res, err
}

func (r *Resolver) resolve(ctx context.Context, q Query) (Result, error) {
	set, err := r.releaseSet(ctx, q.Package)
	if err != nil {
		return Result{}, err
	}

	rec, ok := set.LatestAsOf(q.Date.Time())
	if !ok {
		return Result{}, errors.New(errors.ErrCodeNoQualifyingRelease,
			"no version of %s was published on or before %s", q.Package, q.Date)
	}
	r.logger.Debug("resolved", "package", q.Package, "date", q.Date, "version", rec.Version)
	return Result{
		Package:    q.Package,
		Date:       q.Date,
		Version:    rec.Version,
		UploadedAt: rec.UploadedAt,
	}, nil
}

func (r *Resolver) releaseSet(ctx context.Context, name string) (release.Set, error) {
	cacheHooks := observability.Cache()
	if f, ok := r.releases[name]; ok {
		cacheHooks.OnCacheHit(ctx, "releases")
		return f.set, f.err
	}
	cacheHooks.OnCacheMiss(ctx, "releases")

	r.logger.Debug("fetching info", "package", name)
	set, err := r.fetcher.FetchReleases(ctx, name)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	r.releases[name] = fetched{set: set, err: err}
	if err == nil {
		cacheHooks.OnCacheSet(ctx, "releases", set.Len())
	}
	return set, err
}
