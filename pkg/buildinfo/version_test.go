package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.2.3"
	if ua := UserAgent(); !strings.HasPrefix(ua, "pypin/v1.2.3 ") {
		t.Errorf("UserAgent() = %q", ua)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	for _, want := range []string{"{{.Name}}", Version, Commit, Date} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}
