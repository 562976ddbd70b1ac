// Package version reports the version of the emulator. The version number is
// set by the linker for release builds:
//
//	go build -ldflags "-X github.com/rc3200/cda/version.number=v0.1.0"
//
// Builds without a version number report "unreleased" if VCS information is
// embedded in the binary and "local" otherwise.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is used when referring to the application
const ApplicationName = "RC3200 CDA"

// set by the linker
var number string

var info Info

// Info is the version information of the running binary
type Info struct {
	Version  string
	Revision string

	// true if the version string is the linker supplied number
	Release bool

	GoVersion string
}

func (i Info) String() string {
	if i.Release {
		return fmt.Sprintf("%s %s", i.Version, i.GoVersion)
	}
	return fmt.Sprintf("%s %s %s", i.Version, i.Revision, i.GoVersion)
}

// fromBuildInfo creates version information from the build settings. the
// build info can be nil
func fromBuildInfo(bi *debug.BuildInfo, number string) Info {
	var vcs bool
	var revision string
	var modified bool

	i := Info{
		Revision:  "no revision information",
		GoVersion: "unknown go version",
	}

	if bi != nil {
		i.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if revision != "" {
		i.Revision = revision
		if modified {
			i.Revision = fmt.Sprintf("%s+dirty", i.Revision)
		}
	}

	switch {
	case number != "":
		i.Version = number
		i.Release = true
	case vcs:
		i.Version = "unreleased"
	default:
		i.Version = "local"
	}

	return i
}

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		bi = nil
	}
	info = fromBuildInfo(bi, number)
}

// Version returns the version information of the running binary
func Version() Info {
	return info
}

// Title returns a string that can be used in a window title. Release builds
// show the version number and other builds show the revision
func Title() string {
	if info.Release {
		return fmt.Sprintf("%s (%s)", ApplicationName, info.Version)
	}
	return fmt.Sprintf("%s (%s)", ApplicationName, info.Revision)
}
