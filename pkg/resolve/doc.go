// Package resolve answers "which version of a package was the latest one
// published on PyPI as of a given date".
//
// # Overview
//
// A [Resolver] combines a [Fetcher] (normally *pypi.Client) with two
// per-run memos:
//
//   - a [ResultCache] keyed by [Query] (normalized name, date), holding the
//     version found or the error that made the lookup fail;
//   - a release memo keyed by name, so asking about the same package for a
//     second date does not hit the index again.
//
// Both are owned by the Resolver and live as long as it does; nothing is
// global. A Resolver is meant for one sequential run and is not safe for
// concurrent use. Servers build one per request and share the underlying
// fetcher through a [SharedFetcher].
//
// # Semantics
//
// The cutoff is midnight UTC at the start of the target date and is
// inclusive. Among all files uploaded at or before the cutoff, the one with
// the latest instant wins; equal instants go to the lexicographically
// smallest version string. See [release.Set.LatestAsOf].
//
// Failures are cached like successes, so a package that is missing from the
// index is reported once per date. Interruptions are not cached.
//
// [release.Set.LatestAsOf]: github.com/matzehuels/pypin/pkg/release.Set.LatestAsOf
package resolve
