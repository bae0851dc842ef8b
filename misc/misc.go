// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set with -ldflags "-X lbe/misc.version=... -X lbe/misc.gitHash=...".
var (
	version = "dev"
	gitHash = "unknown"
	appName = ""
)

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit hash program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name without extension.
func GetAppName() string {
	if len(appName) == 0 {
		appName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
	}
	return appName
}
