package paths

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the base name of the registry file.
const ConfigFileName = "config.toml"

func DefaultConfigDir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "vm")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "vm")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vm")
}

func DefaultConfigPath() string { return filepath.Join(DefaultConfigDir(), ConfigFileName) }
