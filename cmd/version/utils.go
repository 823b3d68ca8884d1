package version

import (
	"runtime/debug"
	"strings"
	"time"
)

// These variables can be overridden at build time with ldflags
var (
	NotaryVersion   string // -X github.com/trufnetwork/notary/cmd/version.NotaryVersion=...
	NotaryCommit    string // -X github.com/trufnetwork/notary/cmd/version.NotaryCommit=...
	NotaryBuildTime string // -X github.com/trufnetwork/notary/cmd/version.NotaryBuildTime=...
)

const (
	shortHashLength = 9
	dirtySuffix     = "dirty"
	develVersion    = "(devel)"
)

// buildSettings is what the Go toolchain stamped into the binary
type buildSettings struct {
	Version  string
	Revision string
	RevTime  time.Time
	Modified bool
}

var readBuildInfo = debug.ReadBuildInfo

func stampedBuild() buildSettings {
	var bs buildSettings
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return bs
	}
	bs.Version = info.Main.Version
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			bs.Revision = s.Value
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
				bs.RevTime = t
			}
		case "vcs.modified":
			bs.Modified = s.Value == "true"
		}
	}
	return bs
}

// getVersion returns the ldflags version if set, otherwise the module version
func getVersion() string {
	if NotaryVersion != "" {
		return NotaryVersion
	}
	if v := stampedBuild().Version; v != "" {
		return v
	}
	return develVersion
}

// getCommit returns the commit in short form
func getCommit() string {
	commit := NotaryCommit
	if commit == "" {
		bs := stampedBuild()
		commit = bs.Revision
		if commit != "" && bs.Modified {
			commit += "-" + dirtySuffix
		}
	}
	if len(commit) > shortHashLength && !strings.HasSuffix(commit, dirtySuffix) {
		return commit[:shortHashLength]
	}
	return commit
}

func getBuildTime() time.Time {
	if NotaryBuildTime != "" {
		if t, err := time.Parse(time.RFC3339, NotaryBuildTime); err == nil {
			return t
		}
	}
	return stampedBuild().RevTime
}

// getBuildTimeDisplay returns a formatted build time with context about whether it's commit or build time
func getBuildTimeDisplay() string {
	buildTime := getBuildTime()
	if buildTime.IsZero() {
		return "unknown"
	}

	// A dirty ldflags build is stamped with the build time, not the commit time.
	if NotaryBuildTime != "" && strings.HasSuffix(NotaryVersion, dirtySuffix) {
		return buildTime.Format(time.RFC3339) + " (build time)"
	}
	return buildTime.Format(time.RFC3339) + " (commit time)"
}
