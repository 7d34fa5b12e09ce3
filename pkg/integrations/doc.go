// Package integrations provides the HTTP plumbing shared by registry API
// clients.
//
// # Overview
//
// [Client] performs single-attempt JSON GETs with a bounded timeout and
// classifies failures into sentinel errors:
//
//   - [ErrNotFound]: HTTP 404
//   - *[StatusError]: any other non-200 status
//   - [ErrDecode]: body is not valid JSON
//   - [ErrNetwork]: the request never produced a response
//
// Cancelling the request context returns the context error unchanged, so
// callers can tell an interrupted run from a failed fetch.
//
// The registry client lives in a subpackage:
//
//   - [pypi]: Python Package Index release histories
//
// # Response store
//
// [Client.Cached] consults an optional [cache.Cache] before fetching and
// stores decoded values after a successful fetch. The default store is a
// [cache.NullCache], so nothing persists unless a caller opts in.
//
// [pypi]: github.com/matzehuels/pypin/pkg/integrations/pypi
// [cache.Cache]: github.com/matzehuels/pypin/pkg/cache.Cache
// [cache.NullCache]: github.com/matzehuels/pypin/pkg/cache.NullCache
package integrations
