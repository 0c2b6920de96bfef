// Package version reports build metadata for the promptrec binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

// Set via ldflags.
var (
	Version   string
	Branch    string
	BuildUser string
	BuildDate string
)

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	Modified  bool   `json:"modified,omitempty"`
	Branch    string `json:"branch,omitempty"`
	BuildUser string `json:"buildUser,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

var readBuild = sync.OnceValue(func() Build {
	b := Build{
		Version:   Version,
		Revision:  "unknown",
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Revision = s.Value[:min(7, len(s.Value))]
		case "vcs.modified":
			b.Modified = s.Value == "true"
		case "vcs.time":
			if b.BuildDate == "" {
				b.BuildDate = s.Value
			}
		}
	}

	// Binaries installed with `go install pkg@version` carry no VCS settings.
	if b.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}

	return b
})

// Get returns the metadata of the running binary.
func Get() Build {
	return readBuild()
}

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	b := Get()
	if b.Version != "" {
		return b.Version
	}
	if b.Modified {
		return b.Revision + "-dirty"
	}

	return b.Revision
}

// Info returns a multi-line build description for the version command.
func Info(name string) string {
	b := Get()

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n", name, GetVersion())
	fmt.Fprintf(&sb, "  revision:   %s\n", b.Revision)

	if b.Branch != "" {
		fmt.Fprintf(&sb, "  branch:     %s\n", b.Branch)
	}
	if b.BuildUser != "" || b.BuildDate != "" {
		fmt.Fprintf(&sb, "  build:      %s\n", strings.TrimSpace(b.BuildUser+" "+b.BuildDate))
	}

	fmt.Fprintf(&sb, "  go version: %s %s\n", b.GoVersion, b.Platform)

	return sb.String()
}
