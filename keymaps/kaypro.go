package keymaps

import (
	evdev "github.com/gvalkov/golang-evdev"
)

// KayproKeymap returns the layout of the Kaypro keyboard, which sends 7-bit
// ASCII. Every byte becomes one press and release of a US-layout key with
// Control and Shift held where the character needs them. Bytes 0x00 and
// 0x80-0xff are unmapped.
func KayproKeymap() Keymap {
	var m Keymap

	// Control characters are sent as Ctrl+letter.
	m[0x01] = ctrl(evdev.KEY_A)            // SOH
	m[0x02] = ctrl(evdev.KEY_B)            // STX
	m[0x03] = ctrl(evdev.KEY_C)            // ETX
	m[0x04] = ctrl(evdev.KEY_D)            // EOT
	m[0x05] = ctrl(evdev.KEY_E)            // ENQ
	m[0x06] = ctrl(evdev.KEY_F)            // ACK
	m[0x07] = ctrl(evdev.KEY_G)            // BEL
	m[0x08] = ctrl(evdev.KEY_H)            // BS
	m[0x09] = ctrl(evdev.KEY_I)            // HT
	m[0x0a] = ctrl(evdev.KEY_J)            // LF
	m[0x0b] = ctrl(evdev.KEY_K)            // VT
	m[0x0c] = ctrl(evdev.KEY_L)            // FF
	m[0x0d] = ctrl(evdev.KEY_M)            // CR
	m[0x0e] = ctrl(evdev.KEY_N)            // SO
	m[0x0f] = ctrl(evdev.KEY_O)            // SI
	m[0x10] = ctrl(evdev.KEY_P)            // DLE
	m[0x11] = ctrl(evdev.KEY_Q)            // DC1
	m[0x12] = ctrl(evdev.KEY_R)            // DC2
	m[0x13] = ctrl(evdev.KEY_S)            // DC3
	m[0x14] = ctrl(evdev.KEY_T)            // DC4
	m[0x15] = ctrl(evdev.KEY_U)            // NAK
	m[0x16] = ctrl(evdev.KEY_V)            // SYN
	m[0x17] = ctrl(evdev.KEY_W)            // ETB
	m[0x18] = ctrl(evdev.KEY_X)            // CAN
	m[0x19] = ctrl(evdev.KEY_Y)            // EM
	m[0x1a] = ctrl(evdev.KEY_Z)            // SUB
	m[0x1b] = ctrl(evdev.KEY_LEFTBRACE)    // ESC
	m[0x1c] = ctrl(evdev.KEY_BACKSLASH)    // FS
	m[0x1d] = ctrl(evdev.KEY_RIGHTBRACE)   // GS
	m[0x1e] = ctrlShifted(evdev.KEY_6)     // RS
	m[0x1f] = ctrlShifted(evdev.KEY_MINUS) // US

	m[' '] = key(evdev.KEY_SPACE)
	m['!'] = shifted(evdev.KEY_1)
	m['"'] = shifted(evdev.KEY_APOSTROPHE)
	m['#'] = shifted(evdev.KEY_3)
	m['$'] = shifted(evdev.KEY_4)
	m['%'] = shifted(evdev.KEY_5)
	m['&'] = shifted(evdev.KEY_7)
	m['\''] = key(evdev.KEY_APOSTROPHE)
	m['('] = shifted(evdev.KEY_9)
	m[')'] = shifted(evdev.KEY_0)
	m['*'] = shifted(evdev.KEY_8)
	m['+'] = shifted(evdev.KEY_EQUAL)
	m[','] = key(evdev.KEY_COMMA)
	m['-'] = key(evdev.KEY_MINUS)
	m['.'] = key(evdev.KEY_DOT)
	m['/'] = key(evdev.KEY_SLASH)
	m['0'] = key(evdev.KEY_0)
	m['1'] = key(evdev.KEY_1)
	m['2'] = key(evdev.KEY_2)
	m['3'] = key(evdev.KEY_3)
	m['4'] = key(evdev.KEY_4)
	m['5'] = key(evdev.KEY_5)
	m['6'] = key(evdev.KEY_6)
	m['7'] = key(evdev.KEY_7)
	m['8'] = key(evdev.KEY_8)
	m['9'] = key(evdev.KEY_9)
	m[':'] = shifted(evdev.KEY_SEMICOLON)
	m[';'] = key(evdev.KEY_SEMICOLON)
	m['<'] = shifted(evdev.KEY_COMMA)
	m['='] = key(evdev.KEY_EQUAL)
	m['>'] = shifted(evdev.KEY_DOT)
	m['?'] = shifted(evdev.KEY_SLASH)
	m['@'] = shifted(evdev.KEY_2)
	m['A'] = shifted(evdev.KEY_A)
	m['B'] = shifted(evdev.KEY_B)
	m['C'] = shifted(evdev.KEY_C)
	m['D'] = shifted(evdev.KEY_D)
	m['E'] = shifted(evdev.KEY_E)
	m['F'] = shifted(evdev.KEY_F)
	m['G'] = shifted(evdev.KEY_G)
	m['H'] = shifted(evdev.KEY_H)
	m['I'] = shifted(evdev.KEY_I)
	m['J'] = shifted(evdev.KEY_J)
	m['K'] = shifted(evdev.KEY_K)
	m['L'] = shifted(evdev.KEY_L)
	m['M'] = shifted(evdev.KEY_M)
	m['N'] = shifted(evdev.KEY_N)
	m['O'] = shifted(evdev.KEY_O)
	m['P'] = shifted(evdev.KEY_P)
	m['Q'] = shifted(evdev.KEY_Q)
	m['R'] = shifted(evdev.KEY_R)
	m['S'] = shifted(evdev.KEY_S)
	m['T'] = shifted(evdev.KEY_T)
	m['U'] = shifted(evdev.KEY_U)
	m['V'] = shifted(evdev.KEY_V)
	m['W'] = shifted(evdev.KEY_W)
	m['X'] = shifted(evdev.KEY_X)
	m['Y'] = shifted(evdev.KEY_Y)
	m['Z'] = shifted(evdev.KEY_Z)
	m['['] = key(evdev.KEY_LEFTBRACE)
	m['\\'] = key(evdev.KEY_BACKSLASH)
	m[']'] = key(evdev.KEY_RIGHTBRACE)
	m['^'] = shifted(evdev.KEY_6)
	m['_'] = shifted(evdev.KEY_MINUS)
	m['`'] = key(evdev.KEY_GRAVE)
	m['a'] = key(evdev.KEY_A)
	m['b'] = key(evdev.KEY_B)
	m['c'] = key(evdev.KEY_C)
	m['d'] = key(evdev.KEY_D)
	m['e'] = key(evdev.KEY_E)
	m['f'] = key(evdev.KEY_F)
	m['g'] = key(evdev.KEY_G)
	m['h'] = key(evdev.KEY_H)
	m['i'] = key(evdev.KEY_I)
	m['j'] = key(evdev.KEY_J)
	m['k'] = key(evdev.KEY_K)
	m['l'] = key(evdev.KEY_L)
	m['m'] = key(evdev.KEY_M)
	m['n'] = key(evdev.KEY_N)
	m['o'] = key(evdev.KEY_O)
	m['p'] = key(evdev.KEY_P)
	m['q'] = key(evdev.KEY_Q)
	m['r'] = key(evdev.KEY_R)
	m['s'] = key(evdev.KEY_S)
	m['t'] = key(evdev.KEY_T)
	m['u'] = key(evdev.KEY_U)
	m['v'] = key(evdev.KEY_V)
	m['w'] = key(evdev.KEY_W)
	m['x'] = key(evdev.KEY_X)
	m['y'] = key(evdev.KEY_Y)
	m['z'] = key(evdev.KEY_Z)
	m['{'] = shifted(evdev.KEY_LEFTBRACE)
	m['|'] = shifted(evdev.KEY_BACKSLASH)
	m['}'] = shifted(evdev.KEY_RIGHTBRACE)
	m['~'] = shifted(evdev.KEY_GRAVE)
	m[0x7f] = key(evdev.KEY_DELETE) // DEL

	return m
}

// RegisterKayproKeymap registers the Kaypro keymap with the provider
func RegisterKayproKeymap(provider *Provider) error {
	return provider.Register(Kaypro, KayproKeymap())
}
