package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	s := String()
	if !strings.Contains(s, "version: v9.9.9") {
		t.Errorf("String() = %q, missing version", s)
	}
	if !strings.Contains(s, "layout: v1") {
		t.Errorf("String() = %q, missing layout", s)
	}
}

func TestRevisionPrefersLdflags(t *testing.T) {
	old := Commit
	Commit = "abc123"
	defer func() { Commit = old }()

	if got := revision(); got != "abc123" {
		t.Errorf("revision() = %q, want abc123", got)
	}
	if !strings.Contains(Template(), "commit: abc123") {
		t.Errorf("Template() = %q", Template())
	}
}
