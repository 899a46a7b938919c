package version

import (
	"strings"
	"testing"
)

func TestCurrent_Defaults(t *testing.T) {
	info := Current("pytogo-website")

	if info.Service != "pytogo-website" {
		t.Fatalf("unexpected service: %q", info.Service)
	}
	if info.Version != DevelopmentVersion {
		t.Fatalf("unexpected version: %q", info.Version)
	}
	if info.Commit != Unknown {
		t.Fatalf("unexpected commit: %q", info.Commit)
	}
}

func TestCurrent_EmptyServiceName(t *testing.T) {
	info := Current("  ")
	if info.Service != Unknown {
		t.Fatalf("expected unknown service, got %q", info.Service)
	}
}

func TestInfo_ParseBuildTime(t *testing.T) {
	info := Info{BuildTime: "2026-01-02T15:04:05Z"}
	ts, ok := info.ParseBuildTime()
	if !ok {
		t.Fatal("expected parseable build time")
	}
	if ts.Year() != 2026 {
		t.Fatalf("unexpected year: %d", ts.Year())
	}

	if _, ok := (Info{BuildTime: Unknown}).ParseBuildTime(); ok {
		t.Fatal("expected unknown build time to not parse")
	}
	if _, ok := (Info{BuildTime: "not-a-time"}).ParseBuildTime(); ok {
		t.Fatal("expected malformed build time to not parse")
	}
}

func TestInfo_String(t *testing.T) {
	info := Current("pytogo-website")
	s := info.String()
	if !strings.Contains(s, "pytogo-website@") {
		t.Fatalf("unexpected string: %q", s)
	}
}
