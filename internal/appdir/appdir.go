// Package appdir provides constants and utilities for the .tasklist directory structure.
package appdir

import "path/filepath"

const (
	// Name is the application name used for config and OS config directories.
	Name = "tasklist"

	// Dir is the name of the per-user state directory.
	Dir = ".tasklist"

	// DefaultStoreFile is the default pending task file, relative to the project root.
	DefaultStoreFile = "TODO.json"

	// DefaultConfigFile is the config file name.
	DefaultConfigFile = "tasklist.toml"
)

// ProjectConfigNames returns the project-level config file names in lookup order.
func ProjectConfigNames() []string {
	return []string{DefaultConfigFile, "." + DefaultConfigFile}
}

// UserConfigPath returns the config path inside the .tasklist directory under home.
func UserConfigPath(home string) string {
	return filepath.Join(DirPath(home), DefaultConfigFile)
}

// OSConfigPath returns the config path inside an OS config directory
// such as $XDG_CONFIG_HOME.
func OSConfigPath(configDir string) string {
	return filepath.Join(configDir, Name, DefaultConfigFile)
}

// DirPath returns the full path to the .tasklist directory within base.
func DirPath(base string) string {
	if base == "." || base == "" {
		return Dir
	}
	return filepath.Join(base, Dir)
}
