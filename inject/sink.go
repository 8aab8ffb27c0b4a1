// Package inject provides the virtual input devices key transitions are
// written to.
package inject

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Sink backends.
const (
	SinkKeyboard = "keyboard"
	SinkDirect   = "direct"
)

// Default identity of a direct device.
const (
	DefaultVendor  = 0x1234
	DefaultProduct = 0x5678
)

// ErrClosed is returned when writing to a device after Close.
var ErrClosed = errors.New("virtual input device closed")

// Device is a virtual keyboard accepting key transitions.
type Device interface {
	Send(code uint16, down bool) error
	Sync() error
	Close() error
}

// Options selects and configures a device.
type Options struct {
	Backend string
	Path    string
	Name    string
}

// Backends lists the accepted Options.Backend values.
func Backends() []string {
	return []string{SinkKeyboard, SinkDirect}
}

// Open creates the device described by opts, able to emit every code in
// codes.
func Open(opts Options, codes []uint16, logger zerolog.Logger) (Device, error) {
	switch opts.Backend {
	case SinkKeyboard, "":
		kbd, err := NewKeyboard(opts.Path, opts.Name, codes, logger)
		if err != nil {
			return nil, err
		}
		return kbd, nil
	case SinkDirect:
		d, err := NewDirect(opts.Path, Identity{
			Name:    opts.Name,
			Vendor:  DefaultVendor,
			Product: DefaultProduct,
		}, codes, logger)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown sink %q (want one of %v)", opts.Backend, Backends())
	}
}
