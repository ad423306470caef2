package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGet_Defaults(t *testing.T) {
	withBuildInfo(t, nil, false)

	info := Get()
	if info.Version != Version || info.Commit != Commit || info.BuildTime != BuildTime {
		t.Errorf("Get() = %+v, want ldflags values", info)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
}

func TestGet_FromBuildInfo(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.24.4",
		Main:      debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}, true)

	info := Get()
	want := Info{
		Version:   "v0.3.1",
		Commit:    "0123456789ab",
		BuildTime: "2026-01-02T03:04:05Z",
		GoVersion: "go1.24.4",
	}
	if info != want {
		t.Errorf("Get() = %+v, want %+v", info, want)
	}
}

func TestGet_LdflagsWin(t *testing.T) {
	orig := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = orig })

	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}}, true)

	if got := Get().Version; got != "v9.9.9" {
		t.Errorf("Version = %q, want v9.9.9", got)
	}
}

func TestGet_DevelModule(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)

	if got := Get().Version; got != Version {
		t.Errorf("Version = %q, want %q", got, Version)
	}
}

func TestString(t *testing.T) {
	withBuildInfo(t, nil, false)

	s := String()
	info := Get()
	for _, part := range []string{info.Version, info.Commit, "built at", info.GoVersion} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
}
