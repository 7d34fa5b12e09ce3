// Package release models a package's publication history and answers
// "which version was newest at a given instant".
//
// A [Set] maps each version string to the upload instants of its
// distribution files. PyPI stores one file per wheel or sdist, so a single
// version usually has several instants; every one of them is a candidate.
package release

import "time"

// Record is a single uploaded distribution file.
type Record struct {
	Version    string
	UploadedAt time.Time
}

// Set maps a version to the upload instants of its files.
// A Set is treated as immutable once built.
type Set map[string][]time.Time

// Add appends an upload instant for version, stored in UTC.
func (s Set) Add(version string, at time.Time) {
	s[version] = append(s[version], at.UTC())
}

// Len returns the number of versions in the set.
func (s Set) Len() int { return len(s) }

// LatestAsOf returns the record with the greatest upload instant that is not
// after cutoff. The comparison is inclusive: a file uploaded exactly at cutoff
// qualifies. When several versions share the winning instant, the
// lexicographically smallest version string is chosen so the result does not
// depend on map iteration order.
//
// ok is false when no file was uploaded at or before cutoff.
func (s Set) LatestAsOf(cutoff time.Time) (best Record, ok bool) {
	for v, times := range s {
		for _, t := range times {
			if t.After(cutoff) {
				continue
			}
			switch {
			case !ok, t.After(best.UploadedAt):
				best, ok = Record{Version: v, UploadedAt: t}, true
			case t.Equal(best.UploadedAt) && v < best.Version:
				best.Version = v
			}
		}
	}
	return best, ok
}
