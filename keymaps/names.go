package keymaps

import (
	"fmt"
	"strconv"
	"strings"

	evdev "github.com/gvalkov/golang-evdev"
)

// maxKeyCode is KEY_MAX from linux/input-event-codes.h.
const maxKeyCode = 0x2ff

// keyAliases lists the codes evdev knows by two names. evdev.KEY keeps
// whichever name its init loop saw last, so it differs between runs.
var keyAliases = []struct {
	code      int
	canonical string
	alias     string
}{
	{evdev.KEY_MUTE, "KEY_MUTE", "KEY_MIN_INTERESTING"},
	{evdev.KEY_HANGEUL, "KEY_HANGEUL", "KEY_HANGUEL"},
	{evdev.KEY_COFFEE, "KEY_COFFEE", "KEY_SCREENLOCK"},
	{evdev.KEY_ROTATE_DISPLAY, "KEY_ROTATE_DISPLAY", "KEY_DIRECTION"},
	{evdev.KEY_BRIGHTNESS_AUTO, "KEY_BRIGHTNESS_AUTO", "KEY_BRIGHTNESS_ZERO"},
	{evdev.KEY_WWAN, "KEY_WWAN", "KEY_WIMAX"},
	{evdev.KEY_DISPLAYTOGGLE, "KEY_DISPLAYTOGGLE", "KEY_BRIGHTNESS_TOGGLE"},
	{evdev.KEY_FASTREVERSE, "KEY_FASTREVERSE", "KEY_DATA"},
}

var keyNames, keyCodes = buildKeyTables()

func buildKeyTables() (map[uint16]string, map[string]uint16) {
	names := make(map[uint16]string, len(evdev.KEY))
	codes := make(map[string]uint16, len(evdev.KEY)+len(keyAliases))
	for code, name := range evdev.KEY {
		if code < 0 || code > maxKeyCode {
			continue
		}
		names[uint16(code)] = name
		codes[name] = uint16(code)
	}
	for _, a := range keyAliases {
		names[uint16(a.code)] = a.canonical
		codes[a.canonical] = uint16(a.code)
		codes[a.alias] = uint16(a.code)
	}
	return names, codes
}

// KeyName returns the evdev name of code, e.g. "KEY_A". Codes with two
// names always get the first one listed in keyAliases.
func KeyName(code uint16) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%03x", code)
}

// ParseKeyCode resolves an evdev key name ("KEY_A", "a", "key_a") or a
// numeric code ("30", "0x1e") to a key code.
func ParseKeyCode(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty key code")
	}
	if n, err := strconv.ParseUint(s, 0, 16); err == nil {
		if n > maxKeyCode {
			return 0, fmt.Errorf("key code %d out of range", n)
		}
		return uint16(n), nil
	}

	name := strings.ToUpper(s)
	if !strings.HasPrefix(name, "KEY_") {
		name = "KEY_" + name
	}
	code, ok := keyCodes[name]
	if !ok {
		return 0, fmt.Errorf("unknown key name %q", s)
	}
	return code, nil
}
