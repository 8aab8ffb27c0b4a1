// Package emitter turns key actions into ordered key transitions and writes
// them to an injection sink.
package emitter

import (
	"fmt"
	"sort"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"

	"github.com/serkey/keymaps"
)

// Modifier codes held around keys that need them.
const (
	ControlCode uint16 = evdev.KEY_LEFTCTRL
	ShiftCode   uint16 = evdev.KEY_LEFTSHIFT
)

// Sink receives primitive key transitions.
type Sink interface {
	// Send delivers one press (down) or release of code.
	Send(code uint16, down bool) error
	// Sync asks the sink to report everything sent so far as one batch.
	Sync() error
}

// Transition is one press or release.
type Transition struct {
	Code uint16
	Down bool
}

func (t Transition) String() string {
	if t.Down {
		return keymaps.KeyName(t.Code) + " down"
	}
	return keymaps.KeyName(t.Code) + " up"
}

// Plan returns the transitions for a, in order. Modifiers are pushed on a
// stack as they are pressed and released by popping it, so they always nest
// around the key. Unmapped actions produce nothing, and so do toggle keys
// that resolve to the unmapped code.
func Plan(a keymaps.KeyAction, mode ToggleMode) []Transition {
	if !a.Mapped() {
		return nil
	}
	var single Transition
	if !a.MakeBreak {
		single = mode.Resolve(a.Code)
		if single.Code == keymaps.NoKey {
			return nil
		}
	}

	var (
		held []uint16
		out  []Transition
	)
	press := func(code uint16) {
		out = append(out, Transition{Code: code, Down: true})
		held = append(held, code)
	}

	if a.Control {
		press(ControlCode)
	}
	if a.Shift {
		press(ShiftCode)
	}

	if a.MakeBreak {
		out = append(out,
			Transition{Code: a.Code, Down: true},
			Transition{Code: a.Code, Down: false},
		)
	} else {
		out = append(out, single)
	}

	for i := len(held) - 1; i >= 0; i-- {
		out = append(out, Transition{Code: held[i], Down: false})
	}
	return out
}

// SupportedCodes returns every code m can emit under mode, plus both
// modifiers, sorted.
func SupportedCodes(m *keymaps.Keymap, mode ToggleMode) []uint16 {
	set := map[uint16]struct{}{
		ControlCode: {},
		ShiftCode:   {},
	}
	for b := 0; b < len(m); b++ {
		for _, t := range Plan(m[b], mode) {
			set[t.Code] = struct{}{}
		}
	}

	codes := make([]uint16, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Sequencer writes the transitions of each action to a sink, following
// every transition with a sync.
type Sequencer struct {
	sink Sink
	mode ToggleMode
	log  zerolog.Logger
}

// New creates a sequencer writing to sink.
func New(sink Sink, mode ToggleMode, logger zerolog.Logger) *Sequencer {
	return &Sequencer{
		sink: sink,
		mode: mode,
		log:  logger.With().Str("component", "emitter").Logger(),
	}
}

// Emit sends the transitions for a. The first failure stops emission and is
// returned; nothing is retried.
func (s *Sequencer) Emit(a keymaps.KeyAction) error {
	for _, t := range Plan(a, s.mode) {
		s.log.Trace().Stringer("transition", t).Msg("send")
		if err := s.sink.Send(t.Code, t.Down); err != nil {
			return fmt.Errorf("send %s: %w", t, err)
		}
		if err := s.sink.Sync(); err != nil {
			return fmt.Errorf("sync after %s: %w", t, err)
		}
	}
	return nil
}
