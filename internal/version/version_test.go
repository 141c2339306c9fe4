package version

import (
	"strings"
	"testing"
)

func TestGet_FillsUnknowns(t *testing.T) {
	i := Get()
	if i.Version != Version {
		t.Fatalf("version=%q want %q", i.Version, Version)
	}
	if i.Commit == "" || i.BuildDate == "" {
		t.Fatalf("empty metadata: %+v", i)
	}
	if !strings.Contains(i.Platform, "/") {
		t.Fatalf("platform=%q", i.Platform)
	}
}

func TestString_IncludesName(t *testing.T) {
	s := Get().String()
	if !strings.HasPrefix(s, "translation-gateway ") {
		t.Fatalf("unexpected header: %q", s)
	}
}

func TestShort_TruncatesCommit(t *testing.T) {
	old := Commit
	Commit = "0123456789abcdef"
	defer func() { Commit = old }()

	got := Short()
	want := Version + " (0123456)"
	if got != want {
		t.Fatalf("short=%q want %q", got, want)
	}
}
