package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/siyuan-infoblox/py-imports-group/pkg/std"
)

const develVersion = "(devel)"

var (
	// These variables are set at build time using ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info describes the pig binary and the Python stdlib registry it carries
type Info struct {
	Version       string `json:"version"`
	GitCommit     string `json:"gitCommit"`
	BuildDate     string `json:"buildDate"`
	PythonVersion string `json:"pythonVersion"`
	StdlibModules int    `json:"stdlibModules"`
	GoVersion     string `json:"goVersion"`
	Platform      string `json:"platform"`
}

// Get returns version information. Values not set through ldflags are filled
// from the module build info when the binary was built with "go install".
func Get() Info {
	info := Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		PythonVersion: std.PythonVersion,
		StdlibModules: len(std.Modules()),
		GoVersion:     runtime.Version(),
		Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(&info, bi)
	}
	return info
}

func applyBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != develVersion {
		info.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = setting.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = setting.Value
			}
		}
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("pig version %s\nPython stdlib registry: CPython %s (%d modules)\nGit commit: %s\nBuild date: %s\nGo version: %s\nPlatform: %s",
		i.Version, i.PythonVersion, i.StdlibModules, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
