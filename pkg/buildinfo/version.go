// Package buildinfo holds the version stamped into the linkdeps binary.
//
// The variables are overridden at link time:
//
//	go build -ldflags "-X github.com/matzehuels/linkdeps/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/linkdeps/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/linkdeps/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"     // semantic version, e.g. "v0.3.0"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// String returns the build information printed by "linkdeps version".
func String() string {
	return fmt.Sprintf("linkdeps %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Short returns the version followed by the abbreviated commit.
func Short() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}

// Template returns the cobra version template used by "linkdeps --version".
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, Commit, Date)
}
