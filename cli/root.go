// Package cli provides the serkey command line.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/serkey/config"
	"github.com/serkey/driver"
	"github.com/serkey/emitter"
	"github.com/serkey/inject"
	"github.com/serkey/keymaps"
	"github.com/serkey/logging"
	"github.com/serkey/transport"
)

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"baud":        "baud",
	"parity":      "parity",
	"databits":    "databits",
	"stopbits":    "stopbits",
	"keymap":      "keymap",
	"keymap-file": "keymap_file",
	"toggle-mode": "toggle_mode",
	"sink":        "sink",
	"device-name": "device_name",
	"uinput":      "uinput",
	"verbose":     "verbose",
	"log-level":   "logging.level",
	"log-format":  "logging.format",
}

// NewRootCmd creates the serkey command tree. Each call has its own
// configuration state.
func NewRootCmd() *cobra.Command {
	manager := config.NewManager()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "serkey [flags] serial_device",
		Short: "Serial keyboard driver",
		Long: `serkey reads bytes from a serial line and replays them as key presses on a
virtual keyboard created through uinput.

The device is a tty path such as /dev/ttyUSB0, or unix:/path/to/socket to read
from a terminal program that exposes the line on a unix socket.

Settings are read from --config, .serkey.toml in the working directory or
$XDG_CONFIG_HOME/serkey/serkey.toml, then SERKEY_* environment variables, then
flags.`,
		Args:          deviceArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				manager.Viper().Set("device", args[0])
			}
			cfg, err := manager.Load(configFile)
			if err != nil {
				return driver.NewConfigError("load configuration", err)
			}
			return run(cmd, cfg, manager.ConfigFile())
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return driver.NewConfigError("parse flags", err)
	})

	d := config.DefaultConfig()
	flags := rootCmd.Flags()
	flags.IntP("baud", "b", d.Baud, "line speed")
	flags.StringP("parity", "p", d.Parity, "parity: none, odd, even, mark or space")
	flags.IntP("databits", "d", d.DataBits, "data bits (5-8)")
	flags.IntP("stopbits", "s", d.StopBits, "stop bits (1 or 2)")
	flags.StringP("keymap", "k", d.Keymap, "keymap: kaypro, ascii, media or custom")
	flags.String("toggle-mode", d.ToggleMode, "transition rule for keys without make/break: highbit or legacy")
	flags.String("sink", d.Sink, "virtual device backend: keyboard or direct")
	flags.String("device-name", d.DeviceName, "name of the virtual keyboard")
	flags.String("uinput", d.Uinput, "uinput device node")

	persistent := rootCmd.PersistentFlags()
	persistent.String("keymap-file", d.KeymapFile, "custom keymap file (TOML, YAML or JSON)")
	persistent.StringVarP(&configFile, "config", "c", "", "config file")
	persistent.BoolP("verbose", "v", d.Verbose, "log every received byte")
	persistent.String("log-level", d.Logging.Level, "log level: trace, debug, info, warn or error")
	persistent.String("log-format", d.Logging.Format, "log format: console or json")

	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			flag = persistent.Lookup(name)
		}
		// Lookup only fails for a flag missing above.
		if err := manager.Viper().BindPFlag(key, flag); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	rootCmd.AddCommand(newKeymapsCmd(), newDumpCmd(manager.Viper()))
	return rootCmd
}

func deviceArgs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return driver.NewConfigError("parse arguments", fmt.Errorf("expected one serial device, got %d arguments", len(args)))
	}
	return nil
}

func newLogger(cmd *cobra.Command, cfg config.LoggingConfig) zerolog.Logger {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = cfg.Format
	lc.Output = cmd.ErrOrStderr()
	return logging.New(lc)
}

// loadKeymap selects name, reading the custom keymap file only when it is
// the one selected.
func loadKeymap(name, file string) (keymaps.Keymap, error) {
	customFile := ""
	if name == keymaps.Custom {
		customFile = file
	}
	provider, err := keymaps.CreateDefaultProvider(customFile)
	if err != nil {
		return keymaps.Keymap{}, err
	}
	return provider.Select(name)
}

func run(cmd *cobra.Command, cfg *config.Config, configFile string) error {
	logger := newLogger(cmd, cfg.Logging)

	keymap, err := loadKeymap(cfg.Keymap, cfg.KeymapFile)
	if err != nil {
		return driver.NewConfigError("select keymap", err)
	}
	mode, err := emitter.ParseToggleMode(cfg.ToggleMode)
	if err != nil {
		return driver.NewConfigError("toggle mode", err)
	}

	line := transport.Line{
		Baud:     cfg.Baud,
		Parity:   cfg.Parity,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
	}
	sinkOpts := inject.Options{
		Backend: cfg.Sink,
		Path:    cfg.Uinput,
		Name:    cfg.DeviceName,
	}

	logger.Info().
		Str("device", cfg.Device).
		Stringer("line", line).
		Str("keymap", cfg.Keymap).
		Str("sink", cfg.Sink).
		Str("config", configFile).
		Msg("starting serkey")

	session := driver.NewSession(driver.Options{
		Keymap:     keymap,
		ToggleMode: mode,
		OpenTransport: func() (driver.Transport, error) {
			return transport.Open(cfg.Device, line, logger)
		},
		OpenSink: func(codes []uint16) (driver.Sink, error) {
			return inject.Open(sinkOpts, codes, logger)
		},
		Logger: logger,
	})
	return session.Serve(cmd.Context())
}
