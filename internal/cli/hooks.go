package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pypin/pkg/observability"
)

// logHooks reports observability events as debug logs. It is registered
// when --verbose is set.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetResolveHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnResolveStart(_ context.Context, pkg, date string) {
	h.logger.Debug("resolve start", "package", pkg, "date", date)
}

func (h logHooks) OnResolveComplete(_ context.Context, pkg, date, version string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "package", pkg, "date", date, "took", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("resolve done", "package", pkg, "date", date, "version", version, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "cache", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "cache", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "cache", keyType, "size", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ observability.ResolveHooks = logHooks{}
	_ observability.CacheHooks   = logHooks{}
	_ observability.HTTPHooks    = logHooks{}
)
