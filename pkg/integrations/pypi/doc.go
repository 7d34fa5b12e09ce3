// Package pypi provides an HTTP client for the Python Package Index JSON API.
//
// # Overview
//
// [Client.FetchReleases] downloads https://pypi.org/pypi/<name>/json once
// and reduces it to a [release.Set]: each version mapped to the upload
// instants of its distribution files.
//
//	client := pypi.NewClient(pypi.Options{})
//	defer client.Close()
//
//	set, err := client.FetchReleases(ctx, "flask")
//	if err != nil {
//	    return err
//	}
//	rec, ok := set.LatestAsOf(date.Time())
//
// # Timestamps
//
// upload_time_iso_8601 is preferred; upload_time is the fallback and is read
// as UTC whether or not it carries a trailing Z. Files with neither are
// skipped and logged at warn level. Yanked files are kept: they were
// published on their upload date.
//
// # Release store
//
// With [Options.Store] set, decoded release sets are kept under
// pypi:releases:<name> for [Options.StoreTTL]. Only successful fetches are
// stored. [Options.Refresh] skips reads from the store.
//
// [release.Set]: github.com/matzehuels/pypin/pkg/release.Set
package pypi
