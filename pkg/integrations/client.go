package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pypin/pkg/cache"
	"github.com/matzehuels/pypin/pkg/observability"
)

// Options configures a [Client]. The zero value is usable.
type Options struct {
	Timeout  time.Duration     // Per-request timeout (default 10s)
	Headers  map[string]string // Headers applied to every request (may be nil)
	Store    cache.Cache       // Cross-run store for decoded responses (default: null)
	StoreTTL time.Duration     // TTL for store entries (0 = never expire)
	Logger   *log.Logger       // Logger for warnings (default: log.Default())
}

// Client provides shared HTTP functionality for registry API clients.
// It handles the optional response store, request headers and
// observability hooks. Each request is attempted exactly once.
type Client struct {
	http     *http.Client
	store    cache.Cache
	storeTTL time.Duration
	headers  map[string]string
	logger   *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	store := opts.Store
	if store == nil {
		store = cache.NewNullCache()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		http:     NewHTTPClient(timeout),
		store:    store,
		storeTTL: opts.StoreTTL,
		headers:  opts.Headers,
		logger:   logger,
	}
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger { return c.logger }

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Cached retrieves a value from the store or executes fetch and stores the result.
// If refresh is true, the store is not read, but a successful fetch still
// refreshes it. Store failures are logged and otherwise ignored.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		data, hit, err := c.store.Get(ctx, key)
		if err != nil {
			c.logger.Debug("store read failed", "key", key, "err", err)
		}
		if hit && json.Unmarshal(data, v) == nil {
			observability.Cache().OnCacheHit(ctx, "store")
			return nil
		}
		observability.Cache().OnCacheMiss(ctx, "store")
	}
	if err := fetch(); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if err := c.store.Set(ctx, key, data, c.storeTTL); err != nil {
		c.logger.Debug("store write failed", "key", key, "err", err)
		return nil
	}
	observability.Cache().OnCacheSet(ctx, "store", len(data))
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// Errors wrap [ErrNotFound], [ErrNetwork], [ErrDecode] or are a *[StatusError];
// cancellation of ctx is returned as ctx.Err().
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	return body, nil
}

func checkStatus(code int) error {
	switch code {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &StatusError{Code: code}
	}
}
