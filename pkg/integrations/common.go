package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// DefaultTimeout bounds every registry request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist in the registry.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for transport failures (timeouts, DNS, refused connections).
	ErrNetwork = errors.New("network error")

	// ErrDecode is returned when a response body is not valid JSON for the target type.
	ErrDecode = errors.New("invalid response body")
)

// StatusError reports a non-200, non-404 HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// NewHTTPClient creates an HTTP client with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NormalizePkgName converts a package name to its canonical form.
// Applies lowercase and collapses each run of "-", "_" and "." into a
// single hyphen, following PEP 503 normalization rules used by PyPI.
func NormalizePkgName(name string) string {
	return pkgNameSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

var pkgNameSeparators = regexp.MustCompile(`[-_.]+`)
