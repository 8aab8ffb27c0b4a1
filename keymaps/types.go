package keymaps

import (
	evdev "github.com/gvalkov/golang-evdev"
)

// TogglePress marks the code of a key without make/break as a press; the
// code without it is a release. It is above KEY_MAX, so clearing it always
// leaves the key the entry names.
const TogglePress uint16 = 0x8000

// NoKey is the code of an unmapped byte. Bytes that resolve to it are
// consumed without emitting anything.
const NoKey uint16 = evdev.KEY_RESERVED

// KeyAction describes how one received byte is turned into key events.
type KeyAction struct {
	Code      uint16
	Control   bool
	Shift     bool
	MakeBreak bool
}

// Mapped reports whether the action emits anything at all.
func (a KeyAction) Mapped() bool {
	return a.Code != NoKey
}

// Key returns the key the action names, without the TogglePress flag.
func (a KeyAction) Key() uint16 {
	if a.MakeBreak {
		return a.Code
	}
	return a.Code &^ TogglePress
}

// Pressed reports whether a toggle action carries TogglePress.
func (a KeyAction) Pressed() bool {
	return !a.MakeBreak && a.Code&TogglePress != 0
}

// Keymap translates every possible byte value to a KeyAction.
type Keymap [256]KeyAction

// Lookup returns the action for byte b.
func (m *Keymap) Lookup(b byte) KeyAction {
	return m[b]
}

// Keymap names accepted by Select.
const (
	Kaypro = "kaypro"
	ASCII  = "ascii"
	Media  = "media"
	Custom = "custom"
)

// Names lists every keymap name in the order shown to users.
func Names() []string {
	return []string{Kaypro, ASCII, Media, Custom}
}

// IsKnown reports whether name is one of Names.
func IsKnown(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

func key(code uint16) KeyAction {
	return KeyAction{Code: code, MakeBreak: true}
}

func shifted(code uint16) KeyAction {
	return KeyAction{Code: code, Shift: true, MakeBreak: true}
}

func ctrl(code uint16) KeyAction {
	return KeyAction{Code: code, Control: true, MakeBreak: true}
}

func ctrlShifted(code uint16) KeyAction {
	return KeyAction{Code: code, Control: true, Shift: true, MakeBreak: true}
}

func toggle(code uint16) KeyAction {
	return KeyAction{Code: code}
}

func togglePressed(code uint16) KeyAction {
	return KeyAction{Code: code | TogglePress}
}
