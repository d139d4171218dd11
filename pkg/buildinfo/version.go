// Package buildinfo reports the version of the foldout binary.
//
// Release builds inject the values with ldflags:
//
//	go build -ldflags "-X github.com/jimtonn/foldout/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/jimtonn/foldout/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// Binaries installed with "go install ...@version" carry no ldflags; for
// those the module version and VCS stamp recorded by the toolchain are used
// instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version, e.g. "v0.3.0".
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Resolve returns the version, commit and date, filling values left at
// their defaults from the toolchain's embedded build info.
func Resolve() (version, commit, date string) {
	version, commit, date = Version, Commit, Date
	info, ok := readBuildInfo()
	if !ok {
		return
	}
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "none" && s.Value != "" {
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			}
		case "vcs.time":
			if date == "unknown" && s.Value != "" {
				date = s.Value
			}
		}
	}
	return
}

// String returns the formatted build information.
func String() string {
	v, c, d := Resolve()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", v, c, d)
}

// Template returns the version template string for cobra.
func Template() string {
	v, c, d := Resolve()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", v, c, d)
}
