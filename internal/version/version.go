// Package version carries the zy build identity: the product name sent in
// the Server header and the version/commit pair printed by `zy version`.
package version

import (
	"fmt"
	"runtime/debug"
)

// Product is the name announced in the Server response header and in mDNS
// TXT records.
const Product = "zy"

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/zy/internal/version.Version=v0.4.0 \
//	                   -X github.com/muurk/zy/internal/version.Commit=abc1234"
//
// When left empty they are filled from the module and VCS build info.
var (
	Version = ""
	Commit  = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if ok {
		fillFromBuildInfo(info)
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fillFromBuildInfo(info *debug.BuildInfo) {
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	if Commit != "" {
		return
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		revision += "-dirty"
	}
	Commit = revision
}

// Full returns "<version> (commit: <commit>)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
