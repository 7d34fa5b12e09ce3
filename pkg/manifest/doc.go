// Package manifest classifies and rewrites requirements-style dependency
// manifests.
//
// [Classify] sorts each line into one of five kinds. Blank lines, comments
// (#), option lines (-r, -e, --index-url, ...) and VCS URLs (git+...) pass
// through unchanged; everything else is a requirement whose package name is
// the text before the first version operator.
//
// A [Rewriter] resolves every requirement against a target date and replaces
// it with an exact pin:
//
//	flask>=1.0        ->  flask==0.12
//	requests[socks]   ->  requests[socks]==2.12.4
//
// Requirements that cannot be resolved are dropped from the output and
// reported as a [Diagnostic]. Line order is preserved.
package manifest
