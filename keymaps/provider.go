package keymaps

import (
	"errors"
	"fmt"
)

// ErrInvalidKeymapSelection is returned by Select for a name that is not
// one of Names, or for the custom keymap when no keymap file was loaded.
var ErrInvalidKeymapSelection = errors.New("invalid keymap selection")

// Provider holds the keymaps available to a run. Tables are registered once
// at startup and never modified afterwards.
type Provider struct {
	keymaps map[string]Keymap
}

// NewProvider creates an empty provider.
func NewProvider() *Provider {
	return &Provider{
		keymaps: map[string]Keymap{},
	}
}

// Register stores m under name. Unknown names are rejected so the set of
// selectable keymaps stays closed.
func (p *Provider) Register(name string, m Keymap) error {
	if !IsKnown(name) {
		return fmt.Errorf("%w: %q", ErrInvalidKeymapSelection, name)
	}
	p.keymaps[name] = m
	return nil
}

// Select returns a copy of the keymap registered under name. Matching is
// exact and case-sensitive.
func (p *Provider) Select(name string) (Keymap, error) {
	if !IsKnown(name) {
		return Keymap{}, fmt.Errorf("%w: %q (want one of %v)", ErrInvalidKeymapSelection, name, Names())
	}
	m, ok := p.keymaps[name]
	if !ok {
		if name == Custom {
			return Keymap{}, fmt.Errorf("%w: %q requires a keymap file", ErrInvalidKeymapSelection, name)
		}
		return Keymap{}, fmt.Errorf("%w: %q is not loaded", ErrInvalidKeymapSelection, name)
	}
	return m, nil
}

// CreateDefaultProvider registers the built-in keymaps and, when customFile
// is set, the custom keymap read from it.
func CreateDefaultProvider(customFile string) (*Provider, error) {
	provider := NewProvider()

	for _, register := range []func(*Provider) error{
		RegisterKayproKeymap,
		RegisterASCIIKeymap,
		RegisterMediaKeymap,
	} {
		if err := register(provider); err != nil {
			return nil, err
		}
	}

	if customFile != "" {
		m, err := LoadCustomKeymap(customFile)
		if err != nil {
			return nil, err
		}
		if err := provider.Register(Custom, m); err != nil {
			return nil, err
		}
	}

	return provider, nil
}
