// Package version reports build information for docklint.
package version

import (
	"runtime"
	"runtime/debug"
)

// version is set at link time with -ldflags "-X .../internal/version.version=...".
var version = "dev"

const buildkitModule = "github.com/moby/buildkit"

// Version returns the version string, suffixed with the linked BuildKit
// version when build info is available.
func Version() string {
	if bk := GetInfo().BuildkitVersion; bk != "" {
		return version + " (buildkit " + bk + ")"
	}
	return version
}

// RawVersion returns the version string without any suffix.
func RawVersion() string {
	return version
}

// Info holds structured version information for machine-readable output.
type Info struct {
	Version         string   `json:"version"`
	BuildkitVersion string   `json:"buildkitVersion,omitempty"`
	Platform        Platform `json:"platform"`
	GoVersion       string   `json:"goVersion"`
	GitCommit       string   `json:"gitCommit,omitempty"`
}

// Platform describes the OS and architecture.
type Platform struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// GetInfo returns structured version information.
func GetInfo() Info {
	info := Info{
		Version:   version,
		Platform:  Platform{OS: runtime.GOOS, Arch: runtime.GOARCH},
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, dep := range bi.Deps {
		if dep.Path == buildkitModule {
			info.BuildkitVersion = dep.Version
			break
		}
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			info.GitCommit = shortCommit(s.Value)
			break
		}
	}
	return info
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
