// Package config loads serkey settings from defaults, a config file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "SERKEY"

type Config struct {
	Device     string        `mapstructure:"device"`
	Baud       int           `mapstructure:"baud"`
	Parity     string        `mapstructure:"parity"`
	DataBits   int           `mapstructure:"databits"`
	StopBits   int           `mapstructure:"stopbits"`
	Keymap     string        `mapstructure:"keymap"`
	KeymapFile string        `mapstructure:"keymap_file"`
	ToggleMode string        `mapstructure:"toggle_mode"`
	Sink       string        `mapstructure:"sink"`
	DeviceName string        `mapstructure:"device_name"`
	Uinput     string        `mapstructure:"uinput"`
	Verbose    bool          `mapstructure:"verbose"`
	Logging    LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Manager owns the viper instance that flags are bound to.
type Manager struct {
	viper *viper.Viper
	file  string
}

func NewManager() *Manager {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	m := &Manager{viper: v}
	m.setDefaults()
	return m
}

// Viper exposes the underlying instance for flag binding.
func (m *Manager) Viper() *viper.Viper {
	return m.viper
}

// ConfigFile is the file read by the last Load, or "" if none was found.
func (m *Manager) ConfigFile() string {
	return m.file
}

func (m *Manager) setDefaults() {
	d := DefaultConfig()
	m.viper.SetDefault("device", d.Device)
	m.viper.SetDefault("baud", d.Baud)
	m.viper.SetDefault("parity", d.Parity)
	m.viper.SetDefault("databits", d.DataBits)
	m.viper.SetDefault("stopbits", d.StopBits)
	m.viper.SetDefault("keymap", d.Keymap)
	m.viper.SetDefault("keymap_file", d.KeymapFile)
	m.viper.SetDefault("toggle_mode", d.ToggleMode)
	m.viper.SetDefault("sink", d.Sink)
	m.viper.SetDefault("device_name", d.DeviceName)
	m.viper.SetDefault("uinput", d.Uinput)
	m.viper.SetDefault("verbose", d.Verbose)
	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
}

// Load reads the config file, if any, and returns the validated result.
// An explicit path must exist; otherwise the search locations are tried in
// order and a missing file is not an error.
func (m *Manager) Load(explicit string) (*Config, error) {
	path, err := findConfigFile(explicit)
	if err != nil {
		return nil, err
	}
	if path != "" {
		m.viper.SetConfigFile(path)
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	m.file = path

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	normalizeConfig(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}

	candidates, err := SearchPaths()
	if err != nil {
		return "", err
	}
	for _, p := range candidates {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config file: %w", err)
		}
	}
	return "", nil
}

// normalizeConfig applies settings that depend on other settings.
func normalizeConfig(cfg *Config) {
	cfg.Parity = strings.ToLower(cfg.Parity)
	if cfg.Verbose {
		switch cfg.Logging.Level {
		case "trace", "debug":
		default:
			cfg.Logging.Level = "debug"
		}
	}
}
