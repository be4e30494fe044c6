// Package misc keeps build time information.
package misc

import (
	"runtime/debug"
)

// set by linker: -X curgen/misc.version=... -X curgen/misc.githash=...
var (
	version = "dev"
	githash = ""
)

const appName = "curgen"

// GetAppName returns name of the program.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git revision program was built from.
func GetGitHash() string {
	if len(githash) != 0 {
		return githash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
