package keymaps

import (
	"os"
	"path/filepath"
	"testing"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := CreateDefaultProvider("")
	require.NoError(t, err)
	return p
}

func TestLookup_TotalOverAllBytes(t *testing.T) {
	p := builtinProvider(t)

	for _, name := range []string{Kaypro, ASCII, Media} {
		t.Run(name, func(t *testing.T) {
			m, err := p.Select(name)
			require.NoError(t, err)

			for b := 0; b < 256; b++ {
				action := m.Lookup(byte(b))
				assert.LessOrEqual(t, int(action.Code&^TogglePress), maxKeyCode, "byte %d", b)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	p := builtinProvider(t)

	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "kaypro"},
		{name: "ascii"},
		{name: "media"},
		{name: "custom", wantErr: true},
		{name: "Kaypro", wantErr: true},
		{name: "KAYPRO", wantErr: true},
		{name: "media_keys", wantErr: true},
		{name: "", wantErr: true},
		{name: " kaypro", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Select(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidKeymapSelection)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSelect_ReturnsCopy(t *testing.T) {
	p := builtinProvider(t)

	m, err := p.Select(Kaypro)
	require.NoError(t, err)
	m['A'] = KeyAction{}

	again, err := p.Select(Kaypro)
	require.NoError(t, err)
	assert.Equal(t, uint16(evdev.KEY_A), again.Lookup('A').Code)
}

func TestRegisterBuiltins(t *testing.T) {
	p := NewProvider()
	require.NoError(t, RegisterKayproKeymap(p))
	require.NoError(t, RegisterASCIIKeymap(p))
	require.NoError(t, RegisterMediaKeymap(p))

	for _, name := range []string{Kaypro, ASCII, Media} {
		_, err := p.Select(name)
		assert.NoError(t, err, name)
	}
}

func TestRegister_RejectsUnknownName(t *testing.T) {
	p := NewProvider()
	err := p.Register("dvorak", Keymap{})
	require.ErrorIs(t, err, ErrInvalidKeymapSelection)
}

func TestKayproKeymap_Entries(t *testing.T) {
	m := KayproKeymap()

	tests := []struct {
		b    byte
		want KeyAction
	}{
		{b: 'A', want: KeyAction{Code: evdev.KEY_A, Shift: true, MakeBreak: true}},
		{b: 'a', want: KeyAction{Code: evdev.KEY_A, MakeBreak: true}},
		{b: 0x01, want: KeyAction{Code: evdev.KEY_A, Control: true, MakeBreak: true}},
		{b: 0x1e, want: KeyAction{Code: evdev.KEY_6, Control: true, Shift: true, MakeBreak: true}},
		{b: ' ', want: KeyAction{Code: evdev.KEY_SPACE, MakeBreak: true}},
		{b: '-', want: KeyAction{Code: evdev.KEY_MINUS, MakeBreak: true}},
		{b: '_', want: KeyAction{Code: evdev.KEY_MINUS, Shift: true, MakeBreak: true}},
		{b: '|', want: KeyAction{Code: evdev.KEY_BACKSLASH, Shift: true, MakeBreak: true}},
		{b: 0x7f, want: KeyAction{Code: evdev.KEY_DELETE, MakeBreak: true}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Lookup(tt.b), "byte 0x%02x", tt.b)
	}

	assert.False(t, m.Lookup(0x00).Mapped())
	for b := 0x80; b <= 0xff; b++ {
		assert.False(t, m.Lookup(byte(b)).Mapped(), "byte 0x%02x", b)
	}
}

func TestASCIIKeymap_SameCodesSingleTransition(t *testing.T) {
	kaypro := KayproKeymap()
	ascii := ASCIIKeymap()

	for b := 0; b < 256; b++ {
		assert.Equal(t, kaypro[b].Code, ascii[b].Code)
		assert.Equal(t, kaypro[b].Control, ascii[b].Control)
		assert.Equal(t, kaypro[b].Shift, ascii[b].Shift)
		assert.False(t, ascii[b].MakeBreak)
	}
}

func TestMediaKeymap(t *testing.T) {
	m := MediaKeymap()

	assert.Equal(t, KeyAction{Code: evdev.KEY_MUTE}, m.Lookup(0))
	assert.Equal(t, KeyAction{Code: evdev.KEY_MUTE | TogglePress}, m.Lookup(0x80))
	assert.Equal(t, KeyAction{Code: evdev.KEY_EJECTCLOSECD}, m.Lookup(14))
	assert.Equal(t, KeyAction{Code: evdev.KEY_EJECTCLOSECD | TogglePress}, m.Lookup(0x8e))
	assert.False(t, m.Lookup(15).Mapped())
	assert.False(t, m.Lookup(0x8f).Mapped())
	assert.False(t, m.Lookup(255).Mapped())
}

func TestParseKeyCode(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{in: "KEY_A", want: evdev.KEY_A},
		{in: "key_a", want: evdev.KEY_A},
		{in: "a", want: evdev.KEY_A},
		{in: "LEFTSHIFT", want: evdev.KEY_LEFTSHIFT},
		{in: "30", want: 30},
		{in: "0x71", want: 0x71},
		{in: "0", want: NoKey},
		{in: "0x300", wantErr: true},
		{in: "KEY_NOPE", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeyCode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "KEY_A", KeyName(evdev.KEY_A))
	assert.Equal(t, "KEY_LEFTCTRL", KeyName(evdev.KEY_LEFTCTRL))
	assert.Equal(t, "0x2fe", KeyName(0x2fe))
}

func TestKeyName_AliasedCodesUseOneName(t *testing.T) {
	assert.Equal(t, "KEY_MUTE", KeyName(113))
	assert.Equal(t, "KEY_COFFEE", KeyName(152))
	assert.Equal(t, "KEY_FASTREVERSE", KeyName(0x275))
}

func TestParseKeyCode_AcceptsEveryAlias(t *testing.T) {
	names := map[string]uint16{
		"KEY_MUTE":              113,
		"KEY_MIN_INTERESTING":   113,
		"KEY_COFFEE":            152,
		"KEY_SCREENLOCK":        152,
		"KEY_HANGEUL":           evdev.KEY_HANGEUL,
		"KEY_HANGUEL":           evdev.KEY_HANGEUL,
		"KEY_ROTATE_DISPLAY":    evdev.KEY_ROTATE_DISPLAY,
		"KEY_DIRECTION":         evdev.KEY_ROTATE_DISPLAY,
		"KEY_BRIGHTNESS_AUTO":   evdev.KEY_BRIGHTNESS_AUTO,
		"KEY_BRIGHTNESS_ZERO":   evdev.KEY_BRIGHTNESS_AUTO,
		"KEY_WWAN":              evdev.KEY_WWAN,
		"KEY_WIMAX":             evdev.KEY_WWAN,
		"KEY_DISPLAYTOGGLE":     evdev.KEY_DISPLAYTOGGLE,
		"KEY_BRIGHTNESS_TOGGLE": evdev.KEY_DISPLAYTOGGLE,
		"KEY_FASTREVERSE":       evdev.KEY_FASTREVERSE,
		"KEY_DATA":              evdev.KEY_FASTREVERSE,
	}
	for name, want := range names {
		got, err := ParseKeyCode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestKeyName_RoundTrips(t *testing.T) {
	for code := range evdev.KEY {
		if code > maxKeyCode {
			continue
		}
		got, err := ParseKeyCode(KeyName(uint16(code)))
		require.NoError(t, err, "code %d", code)
		assert.Equal(t, uint16(code), got)
	}
}

func TestKeyAction_KeyAndPressed(t *testing.T) {
	m := MediaKeymap()

	release := m.Lookup(0x01)
	assert.Equal(t, uint16(evdev.KEY_VOLUMEUP), release.Key())
	assert.False(t, release.Pressed())

	press := m.Lookup(0x81)
	assert.Equal(t, uint16(evdev.KEY_VOLUMEUP), press.Key())
	assert.True(t, press.Pressed())

	a := key(evdev.KEY_A)
	assert.Equal(t, uint16(evdev.KEY_A), a.Key())
	assert.False(t, a.Pressed())
}

func writeKeymapFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCustomKeymap(t *testing.T) {
	path := writeKeymapFile(t, "custom.toml", `
[[keys]]
byte = 65
code = "KEY_A"
shift = true

[[keys]]
byte = "0x80"
code = "KEY_VOLUMEUP"
makebreak = false

[[keys]]
byte = "q"
code = 16
control = true
`)

	m, err := LoadCustomKeymap(path)
	require.NoError(t, err)

	assert.Equal(t, KeyAction{Code: evdev.KEY_A, Shift: true, MakeBreak: true}, m.Lookup(65))
	assert.Equal(t, KeyAction{Code: evdev.KEY_VOLUMEUP}, m.Lookup(0x80))
	assert.Equal(t, KeyAction{Code: evdev.KEY_Q, Control: true, MakeBreak: true}, m.Lookup('q'))
	assert.False(t, m.Lookup(66).Mapped())
}

func TestLoadCustomKeymap_ReportsEveryProblem(t *testing.T) {
	path := writeKeymapFile(t, "bad.toml", `
[[keys]]
byte = 300
code = "KEY_A"

[[keys]]
byte = 1
code = "KEY_WHAT"

[[keys]]
byte = 2
code = "KEY_B"

[[keys]]
byte = 2
code = "KEY_C"
`)

	_, err := LoadCustomKeymap(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keys[0].byte")
	assert.Contains(t, err.Error(), "keys[1].code")
	assert.Contains(t, err.Error(), "keys[3].byte")
}

func TestLoadCustomKeymap_MissingFile(t *testing.T) {
	_, err := LoadCustomKeymap(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestCreateDefaultProvider_WithCustom(t *testing.T) {
	path := writeKeymapFile(t, "custom.yaml", `
keys:
  - byte: 0
    code: KEY_ESC
`)

	p, err := CreateDefaultProvider(path)
	require.NoError(t, err)

	m, err := p.Select(Custom)
	require.NoError(t, err)
	assert.Equal(t, uint16(evdev.KEY_ESC), m.Lookup(0).Code)
}
