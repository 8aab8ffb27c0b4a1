package keymaps

// ASCIIKeymap returns the Kaypro character layout with every entry sent as a
// single transition instead of a press/release pair.
func ASCIIKeymap() Keymap {
	m := KayproKeymap()
	for i := range m {
		m[i].MakeBreak = false
	}
	return m
}

// RegisterASCIIKeymap registers the ASCII keymap with the provider
func RegisterASCIIKeymap(provider *Provider) error {
	return provider.Register(ASCII, ASCIIKeymap())
}
