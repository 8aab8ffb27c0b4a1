package config

import (
	"os"
	"path/filepath"
)

const (
	appName       = "serkey"
	localFileName = ".serkey.toml"
	fileName      = "serkey.toml"
)

// GetConfigDir returns $XDG_CONFIG_HOME/serkey (default ~/.config/serkey).
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

// SearchPaths lists the config files tried when none is given: the working
// directory first, then the user config directory.
func SearchPaths() ([]string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return []string{
		localFileName,
		filepath.Join(configDir, fileName),
	}, nil
}
