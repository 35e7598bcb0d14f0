package xdg

import (
	"os"
	"path/filepath"
)

// Dirs resolves XDG Base Directory locations for configuration lookup.
type Dirs struct {
	configHome string
	configDirs []string
}

// New reads the XDG environment, falling back to the base directory defaults.
func New() *Dirs {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			homeDir = "/tmp"
		}
	}

	d := &Dirs{}

	d.configHome = os.Getenv("XDG_CONFIG_HOME")
	if d.configHome == "" {
		d.configHome = filepath.Join(homeDir, ".config")
	}

	configDirsEnv := os.Getenv("XDG_CONFIG_DIRS")
	if configDirsEnv == "" {
		d.configDirs = []string{"/etc/xdg"}
	} else {
		d.configDirs = filepath.SplitList(configDirsEnv)
	}

	return d
}

// ConfigHome returns the base directory for user-specific configuration files
func (d *Dirs) ConfigHome() string {
	return d.configHome
}

// ConfigDirs returns the preference-ordered base directories for configuration files
func (d *Dirs) ConfigDirs() []string {
	return append([]string{d.configHome}, d.configDirs...)
}

// AppConfigPaths lists candidate locations of an application config file,
// most preferred first.
func (d *Dirs) AppConfigPaths(appName, fname string) []string {
	dirs := d.ConfigDirs()
	res := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		res = append(res, filepath.Join(dir, appName, fname))
	}
	return res
}
