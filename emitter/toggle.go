package emitter

import (
	"fmt"

	evdev "github.com/gvalkov/golang-evdev"

	"github.com/serkey/keymaps"
)

// ToggleMode selects how a key without make/break gets its single
// transition.
type ToggleMode string

const (
	// ToggleHighBit treats the high bit of the code (keymaps.TogglePress)
	// as the press flag: the key code is the value with that bit cleared,
	// and the transition is a press when it is set and a release otherwise.
	ToggleHighBit ToggleMode = "highbit"

	// ToggleLegacy computes both the code and the value with a logical
	// AND, as serkey 1.x did. Every mapped key becomes a release of code 1
	// (KEY_ESC).
	ToggleLegacy ToggleMode = "legacy"
)

// ToggleModes lists the accepted modes.
func ToggleModes() []ToggleMode {
	return []ToggleMode{ToggleHighBit, ToggleLegacy}
}

// ParseToggleMode validates s.
func ParseToggleMode(s string) (ToggleMode, error) {
	for _, m := range ToggleModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown toggle mode %q (want one of %v)", s, ToggleModes())
}

// Resolve returns the single transition emitted for a toggle key with the
// given code.
func (m ToggleMode) Resolve(code uint16) Transition {
	if m == ToggleLegacy {
		var c uint16
		if code != 0 {
			c = evdev.KEY_ESC
		}
		return Transition{Code: c, Down: false}
	}
	return Transition{
		Code: code &^ keymaps.TogglePress,
		Down: code&keymaps.TogglePress != 0,
	}
}
