package resolve

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/pypin/pkg/integrations"
	"github.com/matzehuels/pypin/pkg/release"
)

// SharedFetcher collapses concurrent fetches of the same package into one
// upstream request. It is safe for concurrent use and holds no results once
// a fetch completes; per-run memoization stays with each Resolver.
type SharedFetcher struct {
	fetcher Fetcher
	group   singleflight.Group
}

// NewSharedFetcher wraps fetcher.
func NewSharedFetcher(fetcher Fetcher) *SharedFetcher {
	return &SharedFetcher{fetcher: fetcher}
}

// FetchReleases implements Fetcher. The upstream request is detached from
// any single caller's cancellation, so one client going away does not fail
// the others waiting on it; each caller stops waiting when its own context
// is done.
func (s *SharedFetcher) FetchReleases(ctx context.Context, name string) (release.Set, error) {
	key := integrations.NormalizePkgName(name)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.fetcher.FetchReleases(context.WithoutCancel(ctx), name)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(release.Set), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
