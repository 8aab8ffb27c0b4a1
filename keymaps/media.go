package keymaps

import (
	evdev "github.com/gvalkov/golang-evdev"
)

// mediaKeys are assigned to bytes 0x00 upwards.
var mediaKeys = []uint16{
	evdev.KEY_MUTE,
	evdev.KEY_VOLUMEUP,
	evdev.KEY_VOLUMEDOWN,
	evdev.KEY_PLAYPAUSE,
	evdev.KEY_NEXTSONG,
	evdev.KEY_PREVIOUSSONG,
	evdev.KEY_RECORD,
	evdev.KEY_REWIND,
	evdev.KEY_FORWARD,
	evdev.KEY_PLAYCD,
	evdev.KEY_PAUSECD,
	evdev.KEY_STOPCD,
	evdev.KEY_EJECTCD,
	evdev.KEY_CLOSECD,
	evdev.KEY_EJECTCLOSECD,
}

// mediaPressed is or'ed into a media byte to report the key going down.
const mediaPressed = 0x80

// MediaKeymap returns the keymap for a media control pad. Each key is a
// toggle with one transition per byte: n releases key n and 0x80|n presses
// it.
func MediaKeymap() Keymap {
	var m Keymap
	for i, code := range mediaKeys {
		m[i] = toggle(code)
		m[mediaPressed|i] = togglePressed(code)
	}
	return m
}

// RegisterMediaKeymap registers the media keymap with the provider
func RegisterMediaKeymap(provider *Provider) error {
	return provider.Register(Media, MediaKeymap())
}
