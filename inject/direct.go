package inject

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"
	"unsafe"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// uinput ioctl requests from linux/uinput.h.
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiDevSetup   = 0x405c5503
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565

	busUSB = 0x03
)

// settleDelay gives udev and the input stack time to pick up a new device
// before the first event is written.
var settleDelay = time.Second

// uinputSetup mirrors struct uinput_setup.
type uinputSetup struct {
	Bustype      uint16
	Vendor       uint16
	Product      uint16
	Version      uint16
	Name         [80]byte
	FFEffectsMax uint32
}

// Identity is the id a direct device reports to the host.
type Identity struct {
	Name    string
	Vendor  uint16
	Product uint16
}

// Direct is a uinput device driven with raw ioctls. Unlike Keyboard it
// registers exactly the codes it is given, and Send and Sync map one to one
// onto EV_KEY and SYN_REPORT records.
type Direct struct {
	f   *os.File
	w   io.Writer
	log zerolog.Logger
}

// NewDirect opens path, registers codes and creates the device.
func NewDirect(path string, id Identity, codes []uint16, logger zerolog.Logger) (*Direct, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s failed: %w. Ensure 'modprobe uinput' and permissions", path, err)
	}

	if err := setupDevice(int(f.Fd()), id, codes); err != nil {
		_ = f.Close()
		return nil, err
	}
	time.Sleep(settleDelay)

	d := &Direct{
		f:   f,
		w:   f,
		log: logger.With().Str("component", "inject").Str("sink", SinkDirect).Logger(),
	}
	d.log.Info().Str("path", path).Str("name", id.Name).Int("codes", len(codes)).Msg("uinput device created")
	return d, nil
}

func setupDevice(fd int, id Identity, codes []uint16) error {
	if err := unix.IoctlSetInt(fd, uiSetEvBit, evdev.EV_KEY); err != nil {
		return fmt.Errorf("ioctl UI_SET_EVBIT EV_KEY failed: %w", err)
	}
	for _, code := range codes {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(code)); err != nil {
			return fmt.Errorf("ioctl UI_SET_KEYBIT %d failed: %w", code, err)
		}
	}

	setup := uinputSetup{
		Bustype: busUSB,
		Vendor:  id.Vendor,
		Product: id.Product,
	}
	copy(setup.Name[:len(setup.Name)-1], id.Name)
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uiDevSetup, uintptr(unsafe.Pointer(&setup))); errno != 0 {
		return fmt.Errorf("ioctl UI_DEV_SETUP failed: %w", errno)
	}

	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("ioctl UI_DEV_CREATE failed: %w", err)
	}
	return nil
}

func (d *Direct) writeEvent(typ, code uint16, value int32) error {
	if d.w == nil {
		return ErrClosed
	}
	ev := evdev.InputEvent{
		Type:  typ,
		Code:  code,
		Value: value,
	}
	return binary.Write(d.w, binary.NativeEndian, &ev)
}

// Send writes one EV_KEY record.
func (d *Direct) Send(code uint16, down bool) error {
	var value int32
	if down {
		value = 1
	}
	return d.writeEvent(evdev.EV_KEY, code, value)
}

// Sync writes a SYN_REPORT record.
func (d *Direct) Sync() error {
	return d.writeEvent(evdev.EV_SYN, evdev.SYN_REPORT, 0)
}

// Close destroys the device. It is safe to call more than once.
func (d *Direct) Close() error {
	if d.f == nil {
		d.w = nil
		return nil
	}
	f := d.f
	d.f, d.w = nil, nil

	destroyErr := unix.IoctlSetInt(int(f.Fd()), uiDevDestroy, 0)
	closeErr := f.Close()
	if destroyErr != nil {
		return fmt.Errorf("ioctl UI_DEV_DESTROY failed: %w", destroyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close uinput: %w", closeErr)
	}
	d.log.Info().Msg("uinput device destroyed")
	return nil
}
