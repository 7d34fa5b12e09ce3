// Package pkg holds the libraries behind pypin.
//
// pypin answers one question: which version of a Python package was the
// newest one on PyPI at the start of a given day? The packages build on each
// other roughly bottom-up:
//
//	[dates]          parse the target day in one of nine layouts
//	[release]        a package's uploads and the "latest as of" scan
//	[integrations]   shared HTTP client; [pypi] fetches release histories
//	[cache]          optional cross-run store (file or redis)
//	[resolve]        Resolver with per-run result cache; SharedFetcher
//	[manifest]       classify and rewrite requirements files
//	[errors]         coded errors shared by all of the above
//	[observability]  hooks for logging, metrics and tracing
//	[config]         TOML, environment and defaults
//
// Quick start:
//
//	client := pypi.NewClient(pypi.Options{})
//	defer client.Close()
//
//	r := resolve.NewResolver(client, resolve.Options{})
//	res, err := r.Resolve(ctx, "flask", dates.MustParse("01-01-2017"))
//	// res.Version == "0.12"
//
// [dates]: github.com/matzehuels/pypin/pkg/dates
// [release]: github.com/matzehuels/pypin/pkg/release
// [integrations]: github.com/matzehuels/pypin/pkg/integrations
// [pypi]: github.com/matzehuels/pypin/pkg/integrations/pypi
// [cache]: github.com/matzehuels/pypin/pkg/cache
// [resolve]: github.com/matzehuels/pypin/pkg/resolve
// [manifest]: github.com/matzehuels/pypin/pkg/manifest
// [errors]: github.com/matzehuels/pypin/pkg/errors
// [observability]: github.com/matzehuels/pypin/pkg/observability
// [config]: github.com/matzehuels/pypin/pkg/config
package pkg
