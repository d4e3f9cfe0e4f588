// Package version exposes build information injected at link time:
//
//	go build -ldflags "-X github.com/rshade/datagrid/pkg/version.version=1.2.3"
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

const devVersion = "0.0.0-dev"

//nolint:gochecknoglobals // Set via -ldflags.
var (
	version   = devVersion
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the build version. A value that is not valid semver is
// reported as the development version.
func GetVersion() string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return devVersion
	}
	return v.String()
}

// Info returns a one-line build summary.
func Info() string {
	return fmt.Sprintf("datagrid %s (commit %s, built %s, %s)", GetVersion(), gitCommit, buildDate, runtime.Version())
}
