// Package config manages qc's local configuration: the config directory,
// config.yaml, the stored API key and commit rules.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "qc"

// Dir returns the qc configuration directory.
//
// Resolution:
//   - $QC_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/qc if set
//   - %AppData%/qc on Windows
//   - ~/.config/qc elsewhere
//
// Returns "" when no home directory can be determined.
func Dir() string {
	if dir := os.Getenv("QC_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
