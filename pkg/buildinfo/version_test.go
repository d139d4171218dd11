package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { readBuildInfo = prev })
}

func TestResolveDefaults(t *testing.T) {
	withBuildInfo(t, nil)
	v, c, d := Resolve()
	if v != "dev" || c != "none" || d != "unknown" {
		t.Errorf("Resolve() = %q, %q, %q", v, c, d)
	}
}

func TestResolveFromBuildInfo(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})
	v, c, d := Resolve()
	if v != "v0.3.0" {
		t.Errorf("version = %q, want v0.3.0", v)
	}
	if c != "0123456789ab" {
		t.Errorf("commit = %q, want shortened SHA", c)
	}
	if d != "2026-01-02T03:04:05Z" {
		t.Errorf("date = %q", d)
	}
}

func TestResolvePrefersLdflags(t *testing.T) {
	prev := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = prev })

	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.1.0"}})
	if v, _, _ := Resolve(); v != "v9.9.9" {
		t.Errorf("version = %q, ldflags value should win", v)
	}
}

func TestResolveIgnoresDevel(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if v, _, _ := Resolve(); v != "dev" {
		t.Errorf("version = %q, want dev", v)
	}
}

func TestTemplate(t *testing.T) {
	withBuildInfo(t, nil)
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version dev\n") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "commit: none") {
		t.Errorf("String() = %q", String())
	}
}
