package pypi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pypin/pkg/cache"
	pperrors "github.com/matzehuels/pypin/pkg/errors"
	"github.com/matzehuels/pypin/pkg/integrations"
	"github.com/matzehuels/pypin/pkg/release"
)

// DefaultBaseURL is the PyPI JSON API root.
const DefaultBaseURL = "https://pypi.org/pypi"

// Options configures a [Client]. The zero value talks to PyPI with a 10s
// timeout and no cross-run store.
type Options struct {
	BaseURL   string        // API root (default DefaultBaseURL)
	Timeout   time.Duration // Per-request timeout (default 10s)
	UserAgent string        // Sent on every request when non-empty
	Store     cache.Cache   // Cross-run release store (default: none)
	StoreTTL  time.Duration // How long stored release sets stay fresh
	Refresh   bool          // Skip store reads; successful fetches still write
	Logger    *log.Logger   // Receives warnings about skipped entries
}

// Client fetches release histories from PyPI.
//
// A Client holds an HTTP connection pool; call Close when done.
// Methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
	refresh bool
}

// NewClient creates a PyPI client.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	var headers map[string]string
	if opts.UserAgent != "" {
		headers = map[string]string{"User-Agent": opts.UserAgent}
	}
	return &Client{
		Client: integrations.NewClient(integrations.Options{
			Timeout:  opts.Timeout,
			Headers:  headers,
			Store:    opts.Store,
			StoreTTL: opts.StoreTTL,
			Logger:   opts.Logger,
		}),
		baseURL: base,
		refresh: opts.Refresh,
	}
}

// StoreKey returns the cross-run store key for a package's release set.
func StoreKey(name string) string {
	return cache.Key("pypi", "releases", integrations.NormalizePkgName(name))
}

// FetchReleases retrieves every published version of name along with the
// upload instants of its files.
//
// Errors are coded (see package errors):
//   - PACKAGE_NOT_FOUND: the index answered 404
//   - FETCH_ERROR: any other non-200 status, recorded in Error.Status
//   - INVALID_RESPONSE: the body was not the expected JSON
//   - NETWORK_ERROR: no response (timeout, DNS, refused connection)
//   - INVALID_PACKAGE: name is unsafe to place in a URL
//
// If ctx is cancelled, ctx.Err() is returned unchanged.
func (c *Client) FetchReleases(ctx context.Context, name string) (release.Set, error) {
	if err := pperrors.ValidatePackageName(strings.TrimSpace(name)); err != nil {
		return nil, err
	}
	pkg := integrations.NormalizePkgName(name)

	var set release.Set
	err := c.Cached(ctx, StoreKey(pkg), c.refresh, &set, func() error {
		var err error
		set, err = c.fetch(ctx, pkg)
		return err
	})
	if err != nil {
		return nil, err
	}
	if set == nil {
		set = release.Set{}
	}
	return set, nil
}

func (c *Client) fetch(ctx context.Context, pkg string) (release.Set, error) {
	endpoint := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(pkg))
	c.Logger().Debug("fetching releases", "package", pkg, "url", endpoint)

	var data apiResponse
	if err := c.Get(ctx, endpoint, &data); err != nil {
		return nil, classify(pkg, err)
	}
	if data.Releases == nil {
		return nil, pperrors.New(pperrors.ErrCodeInvalidResponse,
			"response for %s has no releases field", pkg)
	}

	set := make(release.Set, len(data.Releases))
	for version, files := range data.Releases {
		if version == "" || len(files) == 0 {
			continue
		}
		for _, f := range files {
			at, err := f.uploadedAt()
			if err != nil {
				c.Logger().Warn("skipping file with bad upload time",
					"package", pkg, "version", version, "err", err)
				continue
			}
			set.Add(version, at)
		}
	}
	return set, nil
}

// classify maps transport-level errors to coded errors.
func classify(pkg string, err error) error {
	var se *integrations.StatusError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, integrations.ErrNotFound):
		return pperrors.New(pperrors.ErrCodePackageNotFound, "package %s not found on PyPI", pkg)
	case errors.As(err, &se):
		return pperrors.FetchError(se.Code, "failed to fetch %s: HTTP %d", pkg, se.Code)
	case errors.Is(err, integrations.ErrDecode):
		return pperrors.Wrap(pperrors.ErrCodeInvalidResponse, err, "invalid response for %s", pkg)
	case errors.Is(err, integrations.ErrNetwork):
		return pperrors.Wrap(pperrors.ErrCodeNetwork, err, "network error fetching %s", pkg)
	default:
		return pperrors.Wrap(pperrors.ErrCodeNetwork, err, "request for %s failed", pkg)
	}
}

type apiResponse struct {
	Releases map[string][]apiFile `json:"releases"`
}

type apiFile struct {
	UploadTime    string `json:"upload_time"`
	UploadTimeISO string `json:"upload_time_iso_8601"`
	Yanked        bool   `json:"yanked"`
}

// uploadTimeLayouts covers upload_time, which PyPI emits without a zone.
var uploadTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05.999999Z",
}

// uploadedAt prefers the ISO-8601 field and falls back to upload_time.
// Zone-less values are read as UTC.
func (f apiFile) uploadedAt() (time.Time, error) {
	if f.UploadTimeISO != "" {
		if t, err := time.Parse(time.RFC3339Nano, f.UploadTimeISO); err == nil {
			return t.UTC(), nil
		}
	}
	if f.UploadTime == "" {
		return time.Time{}, errors.New("missing upload time")
	}
	for _, layout := range uploadTimeLayouts {
		if t, err := time.Parse(layout, f.UploadTime); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable upload time %q", f.UploadTime)
}
