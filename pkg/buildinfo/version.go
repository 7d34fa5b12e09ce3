// Package buildinfo carries the version stamped into the pypin binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/pypin/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/pypin/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/pypin/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/pypin
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v0.3.0").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// UserAgent is the User-Agent pypin sends to the index unless configured
// otherwise.
func UserAgent() string {
	return "pypin/" + Version + " (+https://github.com/matzehuels/pypin)"
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
