package config

import (
	"github.com/serkey/emitter"
	"github.com/serkey/inject"
	"github.com/serkey/keymaps"
	"github.com/serkey/logging"
	"github.com/serkey/transport"
)

const (
	defaultBaud     = 300
	defaultDataBits = 8
	defaultStopBits = 1

	DefaultDeviceName = "serkey"
	DefaultUinput     = "/dev/uinput"
)

// DefaultConfig returns the settings used when nothing overrides them:
// 300 baud, 8N1, the kaypro keymap and a bendahl keyboard.
func DefaultConfig() *Config {
	return &Config{
		Baud:       defaultBaud,
		Parity:     transport.ParityNone,
		DataBits:   defaultDataBits,
		StopBits:   defaultStopBits,
		Keymap:     keymaps.Kaypro,
		ToggleMode: string(emitter.ToggleHighBit),
		Sink:       inject.SinkKeyboard,
		DeviceName: DefaultDeviceName,
		Uinput:     DefaultUinput,
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}
