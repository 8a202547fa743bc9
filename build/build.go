// Package build reports the version metadata the Go toolchain embeds in the
// binary (module version and VCS stamp).
package build

import (
	"runtime/debug"
	"strings"
	"sync"
)

const develVersion = "(devel)"

// Info is the version metadata of the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"` //nolint:tagliatelle
	GitDate   string `json:"git_date,omitempty"`   //nolint:tagliatelle
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"` //nolint:tagliatelle
}

// Current returns the running binary's build info. It is read once.
func Current() Info {
	return current()
}

var current = sync.OnceValue(func() Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{Version: develVersion}
	}

	return FromBuildInfo(bi)
})

// FromBuildInfo extracts Info from the toolchain's build info.
func FromBuildInfo(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   bi.Main.Version,
		GoVersion: bi.GoVersion,
	}

	if info.Version == "" {
		info.Version = develVersion
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.GitCommit = s.Value
		case "vcs.time":
			info.GitDate = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}

	return info
}

// String renders the version with a short commit, e.g. "v1.2.0 (3f2a9c1, modified)".
func (i Info) String() string {
	var extra []string

	if i.GitCommit != "" {
		commit := i.GitCommit
		if len(commit) > 7 { //nolint:mnd
			commit = commit[:7]
		}

		extra = append(extra, commit)
	}

	if i.Modified {
		extra = append(extra, "modified")
	}

	if len(extra) == 0 {
		return i.Version
	}

	return i.Version + " (" + strings.Join(extra, ", ") + ")"
}
