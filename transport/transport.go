// Package transport provides the byte sources a keyboard is read from.
package transport

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

// SocketPrefix marks a device path as a unix-domain socket, as offered by
// `tio --socket unix:<path>`.
const SocketPrefix = "unix:"

// Port is an open keyboard connection.
type Port interface {
	// ReadByte blocks for the next byte. It returns io.EOF when the peer
	// ends the stream.
	ReadByte() (byte, error)
	// Restore puts back the line configuration captured at open.
	Restore() error
	// Close releases the port and unblocks a pending ReadByte. It is safe
	// to call more than once.
	Close() error
}

// Line parameters of a serial port.
type Line struct {
	Baud     int
	Parity   string
	DataBits int
	StopBits int
}

// Parity names accepted by Line.
const (
	ParityNone  = "none"
	ParityOdd   = "odd"
	ParityEven  = "even"
	ParityMark  = "mark"
	ParitySpace = "space"
)

// BaudRates lists the supported line speeds.
func BaudRates() []int {
	return []int{50, 75, 110, 134, 150, 200, 300, 600, 1200, 1800, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400}
}

// Parities lists the accepted parity names.
func Parities() []string {
	return []string{ParityNone, ParityOdd, ParityEven, ParityMark, ParitySpace}
}

// Mode converts l to a serial.Mode.
func (l Line) Mode() (*serial.Mode, error) {
	mode := &serial.Mode{
		BaudRate: l.Baud,
		DataBits: l.DataBits,
	}

	switch l.Parity {
	case ParityNone:
		mode.Parity = serial.NoParity
	case ParityOdd:
		mode.Parity = serial.OddParity
	case ParityEven:
		mode.Parity = serial.EvenParity
	case ParityMark:
		mode.Parity = serial.MarkParity
	case ParitySpace:
		mode.Parity = serial.SpaceParity
	default:
		return nil, fmt.Errorf("invalid parity %q", l.Parity)
	}

	switch l.StopBits {
	case 1:
		mode.StopBits = serial.OneStopBit
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("invalid stop bits %d", l.StopBits)
	}

	if l.DataBits < 5 || l.DataBits > 8 {
		return nil, fmt.Errorf("invalid data bits %d", l.DataBits)
	}
	return mode, nil
}

// String formats l the way terminal programs do, e.g. "300 8N1".
func (l Line) String() string {
	p := "?"
	if l.Parity != "" {
		p = strings.ToUpper(l.Parity[:1])
	}
	return fmt.Sprintf("%d %d%s%d", l.Baud, l.DataBits, p, l.StopBits)
}

// Open connects to device: a unix socket when it carries SocketPrefix,
// otherwise a serial tty configured with line.
func Open(device string, line Line, logger zerolog.Logger) (Port, error) {
	if path, ok := strings.CutPrefix(device, SocketPrefix); ok {
		s, err := OpenSocket(path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := OpenSerial(device, line, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}
