package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nibzard/tasklist/internal/appdir"
)

// firstExisting returns the first path that exists, or "".
func firstExisting(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// findProjectConfigFile looks for a config file in the working directory.
func findProjectConfigFile() string {
	return firstExisting(appdir.ProjectConfigNames()...)
}

// findUserConfigFile prefers ~/.tasklist/tasklist.toml over the OS config
// directory.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, appdir.UserConfigPath(home))
	}
	if dir := osUserConfigDir(); dir != "" {
		candidates = append(candidates, appdir.OSConfigPath(dir))
	}
	return firstExisting(candidates...)
}

// osUserConfigDir returns the platform config directory, or "" when it
// cannot be determined.
func osUserConfigDir() string {
	home, homeErr := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		return os.Getenv("APPDATA")
	case "darwin":
		if homeErr == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if homeErr == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults resets cfg to built-in defaults.
func setDefaults(cfg *Config) {
	*cfg = Config{
		StoreFile:      DefaultStoreFile,
		TickIntervalMS: DefaultTickIntervalMS,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// GetConfigFile returns the config file with the highest precedence that
// was read, or "" if none was.
func (cws *ConfigWithSources) GetConfigFile() string {
	if cws.Config == nil || len(cws.Config.Files) == 0 {
		return ""
	}
	return cws.Config.Files[len(cws.Config.Files)-1]
}
