package keymaps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// customEntry is one [[keys]] table of a custom keymap file.
type customEntry struct {
	Byte      string `mapstructure:"byte"`
	Code      string `mapstructure:"code"`
	Control   bool   `mapstructure:"control"`
	Shift     bool   `mapstructure:"shift"`
	MakeBreak *bool  `mapstructure:"makebreak"`
}

// LoadCustomKeymap reads a keymap file (TOML, YAML or JSON, by extension).
// Each entry under "keys" maps one byte to a key:
//
//	[[keys]]
//	byte = 65        # or "A", or "0x41"
//	code = "KEY_A"   # or a number
//	shift = true
//	makebreak = true # default
//
// Bytes without an entry are unmapped.
func LoadCustomKeymap(path string) (Keymap, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Keymap{}, fmt.Errorf("failed to read keymap file %s: %w", path, err)
	}

	var entries []customEntry
	if err := v.UnmarshalKey("keys", &entries); err != nil {
		return Keymap{}, fmt.Errorf("failed to parse keymap file %s: %w", path, err)
	}

	m, problems := buildCustomKeymap(entries)
	if len(problems) > 0 {
		return Keymap{}, fmt.Errorf("keymap file %s is invalid:\n  - %s", path, strings.Join(problems, "\n  - "))
	}
	return m, nil
}

func buildCustomKeymap(entries []customEntry) (Keymap, []string) {
	var m Keymap
	var problems []string
	seen := make(map[byte]int, len(entries))

	for i, e := range entries {
		b, err := parseByte(e.Byte)
		if err != nil {
			problems = append(problems, fmt.Sprintf("keys[%d].byte: %v", i, err))
			continue
		}
		if prev, dup := seen[b]; dup {
			problems = append(problems, fmt.Sprintf("keys[%d].byte: 0x%02x already mapped by keys[%d]", i, b, prev))
			continue
		}
		seen[b] = i

		code, err := ParseKeyCode(e.Code)
		if err != nil {
			problems = append(problems, fmt.Sprintf("keys[%d].code: %v", i, err))
			continue
		}

		makeBreak := true
		if e.MakeBreak != nil {
			makeBreak = *e.MakeBreak
		}
		m[b] = KeyAction{
			Code:      code,
			Control:   e.Control,
			Shift:     e.Shift,
			MakeBreak: makeBreak,
		}
	}
	return m, problems
}

// parseByte accepts a number ("65", "0x41") or a single character ("A").
func parseByte(s string) (byte, error) {
	if s == "" {
		return 0, fmt.Errorf("missing")
	}
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		return byte(n), nil
	}
	if len(s) == 1 {
		return s[0], nil
	}
	return 0, fmt.Errorf("%q is not a byte value", s)
}
