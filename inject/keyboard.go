package inject

import (
	"fmt"
	"io/fs"

	"github.com/bendahl/uinput"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/serkey/keymaps"
)

// Keyboard is a virtual keyboard created through the uinput library. It
// registers every key code, and each KeyDown/KeyUp is followed by its own
// SYN_REPORT, so Sync has nothing left to flush.
type Keyboard struct {
	kbd    uinput.Keyboard
	log    zerolog.Logger
	closed bool
}

// keyboardMaxCode is the highest code the uinput library registers and
// accepts in KeyDown/KeyUp.
const keyboardMaxCode = 248

// NewKeyboard creates the virtual keyboard at path (normally /dev/uinput).
// It fails when codes holds a key the library cannot emit.
func NewKeyboard(path, name string, codes []uint16, logger zerolog.Logger) (*Keyboard, error) {
	for _, code := range codes {
		if code > keyboardMaxCode {
			return nil, fmt.Errorf("key %s (%d) is above %d, the highest the %s sink can emit; use --sink %s",
				keymaps.KeyName(code), code, keyboardMaxCode, SinkKeyboard, SinkDirect)
		}
	}
	if err := checkWritable(path); err != nil {
		return nil, err
	}
	kbd, err := uinput.CreateKeyboard(path, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual keyboard: %w", err)
	}

	k := newKeyboard(kbd, logger)
	k.log.Info().Str("path", path).Str("name", name).Int("codes", len(codes)).Msg("virtual keyboard created")
	return k, nil
}

func newKeyboard(kbd uinput.Keyboard, logger zerolog.Logger) *Keyboard {
	return &Keyboard{
		kbd: kbd,
		log: logger.With().Str("component", "inject").Str("sink", SinkKeyboard).Logger(),
	}
}

// Send presses or releases code.
func (k *Keyboard) Send(code uint16, down bool) error {
	if k.closed {
		return ErrClosed
	}
	if down {
		return k.kbd.KeyDown(int(code))
	}
	return k.kbd.KeyUp(int(code))
}

// Sync is a no-op: the keyboard reports each transition as it is sent.
func (k *Keyboard) Sync() error {
	if k.closed {
		return ErrClosed
	}
	return nil
}

// Close removes the virtual keyboard. It is safe to call more than once.
func (k *Keyboard) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true
	if err := k.kbd.Close(); err != nil {
		return fmt.Errorf("close virtual keyboard: %w", err)
	}
	k.log.Info().Msg("virtual keyboard removed")
	return nil
}

// checkWritable reports a permission problem on the uinput node as
// fs.ErrPermission, which the uinput library does not preserve.
func checkWritable(path string) error {
	if err := unix.Access(path, unix.W_OK); err != nil {
		return &fs.PathError{Op: "access", Path: path, Err: err}
	}
	return nil
}
