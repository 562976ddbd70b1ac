package version

import (
	"runtime/debug"
	"testing"

	"github.com/rc3200/cda/test"
)

func TestFromBuildInfo(t *testing.T) {
	i := fromBuildInfo(nil, "")
	test.ExpectEquality(t, i.Version, "local")
	test.ExpectEquality(t, i.Revision, "no revision information")
	test.ExpectFailure(t, i.Release)

	bi := &debug.BuildInfo{
		GoVersion: "go1.24.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "3f2a1c"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	i = fromBuildInfo(bi, "")
	test.ExpectEquality(t, i.Version, "unreleased")
	test.ExpectEquality(t, i.Revision, "3f2a1c+dirty")
	test.ExpectEquality(t, i.String(), "unreleased 3f2a1c+dirty go1.24.0")

	i = fromBuildInfo(bi, "v0.1.0")
	test.ExpectEquality(t, i.Version, "v0.1.0")
	test.ExpectSuccess(t, i.Release)
	test.ExpectEquality(t, i.String(), "v0.1.0 go1.24.0")
}
