package transport

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
	"golang.org/x/sys/unix"
)

// Serial reads from a tty through go.bug.st/serial. The termios settings
// the tty had before it was opened are kept on a second descriptor and put
// back by Restore.
type Serial struct {
	path string
	port serial.Port
	log  zerolog.Logger

	savedFd int
	saved   *unix.Termios

	buf         [1]byte
	closeOnce   sync.Once
	closeErr    error
	restoreOnce sync.Once
	restoreErr  error
}

// OpenSerial captures the current settings of path, then opens it with line.
func OpenSerial(path string, line Line, logger zerolog.Logger) (*Serial, error) {
	mode, err := line.Mode()
	if err != nil {
		return nil, err
	}

	savedFd, saved, err := captureTermios(path)
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		_ = unix.Close(savedFd)
		return nil, classifyOpenError(path, err)
	}

	s := &Serial{
		path:    path,
		port:    port,
		savedFd: savedFd,
		saved:   saved,
		log:     logger.With().Str("component", "transport").Str("path", path).Logger(),
	}
	s.log.Info().Stringer("line", line).Msg("serial port opened")
	return s, nil
}

func captureTermios(path string) (int, *unix.Termios, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		_ = unix.Close(fd)
		return -1, nil, fmt.Errorf("%s is not a terminal: %w", path, err)
	}
	return fd, t, nil
}

func classifyOpenError(path string, err error) error {
	var portErr *serial.PortError
	if errors.As(err, &portErr) && portErr.Code() == serial.PermissionDenied {
		return fmt.Errorf("open %s: %w: %w", path, fs.ErrPermission, err)
	}
	return fmt.Errorf("open %s: %w", path, err)
}

// ReadByte blocks for the next byte. A hang-up on the line is reported as
// io.EOF.
func (s *Serial) ReadByte() (byte, error) {
	n, err := s.port.Read(s.buf[:])
	if err != nil {
		var portErr *serial.PortError
		if errors.As(err, &portErr) && portErr.Code() == serial.PortClosed {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("read %s: %w", s.path, err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return s.buf[0], nil
}

// Restore applies the captured settings and releases the descriptor that
// held them. Later calls do nothing.
func (s *Serial) Restore() error {
	s.restoreOnce.Do(func() {
		if err := unix.IoctlSetTermios(s.savedFd, unix.TCSETS, s.saved); err != nil {
			s.restoreErr = fmt.Errorf("restore settings of %s: %w", s.path, err)
		}
		if err := unix.Close(s.savedFd); err != nil && s.restoreErr == nil {
			s.restoreErr = fmt.Errorf("close %s: %w", s.path, err)
		}
		if s.restoreErr == nil {
			s.log.Debug().Msg("serial settings restored")
		}
	})
	return s.restoreErr
}

// Close closes the port.
func (s *Serial) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.port.Close()
		s.log.Info().Msg("serial port closed")
	})
	return s.closeErr
}
