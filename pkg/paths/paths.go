package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "dodot-firefox"

	// ConfigFileName is the name of the application settings file
	ConfigFileName = "config.toml"

	// DefaultInstallFile is the install file used when none is given
	DefaultInstallFile = "install.conf.yaml"

	// EnvConfigDir overrides the XDG config directory for dodot-firefox
	EnvConfigDir = "DODOT_FIREFOX_CONFIG_DIR"
)

// ConfigDir returns the directory holding the application settings file.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the path of the application settings file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}
