package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	Version, Commit, Date = "v1.0.0", "abc123", "2026-01-01"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	want := "version: v1.0.0\ncommit: abc123\nbuilt: 2026-01-01"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Short(); got != "cabinetry/v1.0.0" {
		t.Errorf("Short() = %q", got)
	}
	if !strings.Contains(Template(), "{{.Name}} version v1.0.0") {
		t.Errorf("Template() = %q", Template())
	}
}
