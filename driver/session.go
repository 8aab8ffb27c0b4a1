// Package driver runs a keyboard session: it reads bytes from a transport,
// translates them through a keymap and writes the resulting key events to a
// virtual input device.
package driver

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/serkey/emitter"
	"github.com/serkey/keymaps"
)

// Transport is the byte source of a session.
type Transport interface {
	ReadByte() (byte, error)
	Restore() error
	Close() error
}

// Sink is the virtual input device of a session.
type Sink interface {
	emitter.Sink
	Close() error
}

// Options configures a Session. The open functions are called once, in
// order, by Start.
type Options struct {
	Keymap        keymaps.Keymap
	ToggleMode    emitter.ToggleMode
	OpenTransport func() (Transport, error)
	OpenSink      func(codes []uint16) (Sink, error)
	Logger        zerolog.Logger
}

// Session owns the transport and the sink for one run. It is not safe for
// concurrent use, except that cancelling the context passed to Run may
// happen from any goroutine.
type Session struct {
	opts  Options
	log   zerolog.Logger
	state State

	transport Transport
	sink      Sink
	seq       *emitter.Sequencer

	drainOnce sync.Once
	drainErr  error
}

// NewSession creates a session in the Initializing state.
func NewSession(opts Options) *Session {
	return &Session{
		opts:  opts,
		log:   opts.Logger.With().Str("component", "driver").Logger(),
		state: Initializing,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Serve runs the whole lifecycle: Start, Run and Drain. A nil result means
// the stream ended or the context was cancelled.
func (s *Session) Serve(ctx context.Context) error {
	if err := s.Start(); err != nil {
		_ = s.Drain()
		return err
	}
	return s.Run(ctx)
}

// Start opens the transport, then creates the sink with every code the
// keymap can emit. If the sink cannot be created the transport is restored
// and closed before returning.
func (s *Session) Start() error {
	t, err := s.opts.OpenTransport()
	if err != nil {
		return acquireError(TransportUnavailable, "open transport", err)
	}
	s.transport = t

	codes := emitter.SupportedCodes(&s.opts.Keymap, s.opts.ToggleMode)
	sink, err := s.opts.OpenSink(codes)
	if err != nil {
		_ = s.Drain()
		return acquireError(SinkUnavailable, "create virtual device", err)
	}
	s.sink = sink
	s.seq = emitter.New(sink, s.opts.ToggleMode, s.opts.Logger)

	s.log.Debug().Int("codes", len(codes)).Str("toggle_mode", string(s.opts.ToggleMode)).Msg("session started")
	return nil
}

// Run translates bytes until the stream ends, a read or emit fails, or ctx
// is cancelled, then drains the session. Cancelling ctx closes the
// transport to unblock the pending read.
func (s *Session) Run(ctx context.Context) error {
	if s.transport == nil || s.seq == nil {
		return errors.New("driver: Run called before a successful Start")
	}
	defer func() {
		if err := s.Drain(); err != nil {
			s.log.Warn().Err(err).Msg("teardown incomplete")
		}
	}()

	stop := context.AfterFunc(ctx, func() {
		_ = s.transport.Close()
	})
	defer stop()

	s.state = Running
	s.log.Info().Msg("translating keys")

	for {
		b, err := s.transport.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info().Msg("interrupted")
				return nil
			}
			if errors.Is(err, io.EOF) {
				s.log.Info().Msg("end of stream")
				return nil
			}
			return newError(IoError, "read", err)
		}

		action := s.opts.Keymap.Lookup(b)
		s.trace(b, action)

		if err := s.seq.Emit(action); err != nil {
			return newError(EmitFailure, "emit", err)
		}
	}
}

func (s *Session) trace(b byte, action keymaps.KeyAction) {
	e := s.log.Debug()
	if !e.Enabled() {
		return
	}
	e.Uint8("byte", b).Str("char", printable(b))
	if action.Mapped() {
		e.Str("key", keymaps.KeyName(action.Key())).
			Bool("control", action.Control).
			Bool("shift", action.Shift).
			Bool("makebreak", action.MakeBreak)
	} else {
		e.Bool("unmapped", true)
	}
	e.Msg("key")
}

func printable(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return strconv.QuoteRuneToASCII(rune(b))
}

// Drain restores the transport settings, removes the virtual device and
// closes the transport. Only the first call does anything; later calls
// return the same result.
func (s *Session) Drain() error {
	s.drainOnce.Do(func() {
		s.state = Draining
		var errs []error

		if s.transport != nil {
			if err := s.transport.Restore(); err != nil {
				errs = append(errs, err)
			}
		}
		if s.sink != nil {
			if err := s.sink.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if s.transport != nil {
			if err := s.transport.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		s.drainErr = errors.Join(errs...)
		s.state = Terminated
		s.log.Debug().Msg("session terminated")
	})
	return s.drainErr
}
