package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/serkey/emitter"
	"github.com/serkey/inject"
	"github.com/serkey/keymaps"
	"github.com/serkey/logging"
	"github.com/serkey/transport"
)

// validateConfig checks every setting and reports all problems at once.
func validateConfig(config *Config) error {
	var validationErrors []string

	if config.Device == "" {
		validationErrors = append(validationErrors, "device is required (serial device path or unix:/path/to/socket)")
	}

	if !slices.Contains(transport.BaudRates(), config.Baud) {
		validationErrors = append(validationErrors, fmt.Sprintf("baud must be one of %v (got: %d)", transport.BaudRates(), config.Baud))
	}
	if !slices.Contains(transport.Parities(), config.Parity) {
		validationErrors = append(validationErrors, fmt.Sprintf("parity must be one of: %s (got: %s)", strings.Join(transport.Parities(), ", "), config.Parity))
	}
	if config.DataBits < 5 || config.DataBits > 8 {
		validationErrors = append(validationErrors, fmt.Sprintf("databits must be between 5 and 8 (got: %d)", config.DataBits))
	}
	if config.StopBits != 1 && config.StopBits != 2 {
		validationErrors = append(validationErrors, fmt.Sprintf("stopbits must be 1 or 2 (got: %d)", config.StopBits))
	}

	if !keymaps.IsKnown(config.Keymap) {
		validationErrors = append(validationErrors, fmt.Sprintf("keymap must be one of: %s (got: %s)", strings.Join(keymaps.Names(), ", "), config.Keymap))
	} else if config.Keymap == keymaps.Custom && config.KeymapFile == "" {
		validationErrors = append(validationErrors, "keymap_file is required when keymap is custom")
	}

	if _, err := emitter.ParseToggleMode(config.ToggleMode); err != nil {
		validationErrors = append(validationErrors, "toggle_mode: "+err.Error())
	}

	if !slices.Contains(inject.Backends(), config.Sink) {
		validationErrors = append(validationErrors, fmt.Sprintf("sink must be one of: %s (got: %s)", strings.Join(inject.Backends(), ", "), config.Sink))
	}
	if config.DeviceName == "" {
		validationErrors = append(validationErrors, "device_name cannot be empty")
	}
	if config.Uinput == "" {
		validationErrors = append(validationErrors, "uinput cannot be empty")
	}

	if _, err := logging.ParseLevel(config.Logging.Level); err != nil {
		validationErrors = append(validationErrors, "logging.level: "+err.Error())
	}
	if !slices.Contains(logging.Formats(), config.Logging.Format) {
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be one of: %s (got: %s)", strings.Join(logging.Formats(), ", "), config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}
