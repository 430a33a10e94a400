// Package buildinfo holds version metadata stamped in at link time.
//
//	go build -ldflags "-X github.com/matzehuels/cabinetry/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/cabinetry/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/cabinetry/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/cabinetry
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the multi-line version report.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Short returns "cabinetry/<version>", used as the server's footer and
// the Mongo application name.
func Short() string {
	return "cabinetry/" + Version
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
