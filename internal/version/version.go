// Package version exposes build metadata for the /version endpoint
// and the version subcommand.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Overridable at link time, e.g.
//
//	-X github.com/edgefn/translation-gateway/internal/version.Version=v0.3.0
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get assembles build metadata, filling Commit and BuildDate from the
// embedded VCS stamp when they were not set at link time.
func Get() Info {
	commit, date := Commit, BuildDate
	if commit == "" || date == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					if commit == "" {
						commit = s.Value
					}
				case "vcs.time":
					if date == "" {
						date = s.Value
					}
				}
			}
		}
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return Info{
		Version:   Version,
		Commit:    commit,
		BuildDate: date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf(
		"translation-gateway %s\ncommit: %s\nbuilt at: %s\ngo version: %s\nplatform: %s",
		i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Platform,
	)
}

// Short is the one-line form used for cobra's --version output.
func Short() string {
	i := Get()
	if i.Commit != "unknown" && len(i.Commit) > 7 {
		return fmt.Sprintf("%s (%s)", i.Version, i.Commit[:7])
	}
	return i.Version
}
