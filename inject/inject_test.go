package inject

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bendahl/uinput"
	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKeyboard records calls; unimplemented methods panic through the nil
// embedded interface.
type fakeKeyboard struct {
	uinput.Keyboard
	calls  []string
	fail   error
	closed int
}

func (f *fakeKeyboard) KeyDown(key int) error {
	f.calls = append(f.calls, evdev.KEY[key]+" down")
	return f.fail
}

func (f *fakeKeyboard) KeyUp(key int) error {
	f.calls = append(f.calls, evdev.KEY[key]+" up")
	return f.fail
}

func (f *fakeKeyboard) Close() error {
	f.closed++
	return nil
}

func TestKeyboard_SendMapsToKeyDownUp(t *testing.T) {
	fake := &fakeKeyboard{}
	k := newKeyboard(fake, zerolog.Nop())

	require.NoError(t, k.Send(evdev.KEY_LEFTSHIFT, true))
	require.NoError(t, k.Sync())
	require.NoError(t, k.Send(evdev.KEY_A, true))
	require.NoError(t, k.Send(evdev.KEY_A, false))
	require.NoError(t, k.Send(evdev.KEY_LEFTSHIFT, false))

	assert.Equal(t, []string{"KEY_LEFTSHIFT down", "KEY_A down", "KEY_A up", "KEY_LEFTSHIFT up"}, fake.calls)
}

func TestKeyboard_SendFailurePropagates(t *testing.T) {
	boom := errors.New("write /dev/uinput: no such device")
	k := newKeyboard(&fakeKeyboard{fail: boom}, zerolog.Nop())

	require.ErrorIs(t, k.Send(evdev.KEY_A, true), boom)
}

func TestKeyboard_CloseOnce(t *testing.T) {
	fake := &fakeKeyboard{}
	k := newKeyboard(fake, zerolog.Nop())

	require.NoError(t, k.Close())
	require.NoError(t, k.Close())
	assert.Equal(t, 1, fake.closed)
	require.ErrorIs(t, k.Send(evdev.KEY_A, true), ErrClosed)
	require.ErrorIs(t, k.Sync(), ErrClosed)
}

func readEvents(t *testing.T, buf *bytes.Buffer) []evdev.InputEvent {
	t.Helper()
	var events []evdev.InputEvent
	for buf.Len() > 0 {
		var ev evdev.InputEvent
		require.NoError(t, binary.Read(buf, binary.NativeEndian, &ev))
		events = append(events, ev)
	}
	return events
}

func TestDirect_WritesKeyAndSynRecords(t *testing.T) {
	var buf bytes.Buffer
	d := &Direct{w: &buf, log: zerolog.Nop()}

	require.NoError(t, d.Send(evdev.KEY_A, true))
	require.NoError(t, d.Sync())
	require.NoError(t, d.Send(evdev.KEY_A, false))
	require.NoError(t, d.Sync())

	events := readEvents(t, &buf)
	require.Len(t, events, 4)

	assert.Equal(t, uint16(evdev.EV_KEY), events[0].Type)
	assert.Equal(t, uint16(evdev.KEY_A), events[0].Code)
	assert.Equal(t, int32(1), events[0].Value)

	assert.Equal(t, uint16(evdev.EV_SYN), events[1].Type)
	assert.Equal(t, uint16(evdev.SYN_REPORT), events[1].Code)

	assert.Equal(t, uint16(evdev.EV_KEY), events[2].Type)
	assert.Equal(t, int32(0), events[2].Value)

	assert.Equal(t, uint16(evdev.EV_SYN), events[3].Type)
}

func TestDirect_ClosedRejectsWrites(t *testing.T) {
	var buf bytes.Buffer
	d := &Direct{w: &buf, log: zerolog.Nop()}

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	require.ErrorIs(t, d.Send(evdev.KEY_A, true), ErrClosed)
	require.ErrorIs(t, d.Sync(), ErrClosed)
	assert.Zero(t, buf.Len())
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(Options{Backend: "hid"}, nil, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sink")
}

func TestOpen_MissingNode(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "uinput")

	for _, backend := range Backends() {
		t.Run(backend, func(t *testing.T) {
			_, err := Open(Options{Backend: backend, Path: missing, Name: "serkey"}, nil, zerolog.Nop())
			require.Error(t, err)
		})
	}
}

func TestOpen_KeyboardRejectsCodesAboveItsRange(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "uinput")
	codes := []uint16{evdev.KEY_A, evdev.KEY_OK}

	_, err := Open(Options{Backend: SinkKeyboard, Path: missing, Name: "serkey"}, codes, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KEY_OK")
	assert.Contains(t, err.Error(), "--sink direct")

	_, err = Open(Options{Backend: SinkDirect, Path: missing, Name: "serkey"}, codes, zerolog.Nop())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "--sink direct")
}

func TestNewKeyboard_AcceptsHighestLibraryCode(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "uinput")

	_, err := NewKeyboard(missing, "serkey", []uint16{keyboardMaxCode}, zerolog.Nop())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "--sink direct")
}

func TestUinputSetupLayout(t *testing.T) {
	// struct uinput_setup is 92 bytes; the UI_DEV_SETUP request encodes it.
	assert.Equal(t, 92, binary.Size(uinputSetup{}))
	assert.Equal(t, uint32(0x5c), uint32(uiDevSetup>>16)&0x3fff)
}
