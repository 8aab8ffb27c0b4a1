package transport

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog"
)

// Socket reads from a unix-domain stream socket, such as the one tio
// exposes for the tty it manages. tio owns the line settings, so Restore
// does nothing.
type Socket struct {
	path string
	conn net.Conn
	log  zerolog.Logger

	buf       [1]byte
	closeOnce sync.Once
	closeErr  error
}

// OpenSocket connects to the socket at path.
func OpenSocket(path string, logger zerolog.Logger) (*Socket, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", path, err)
	}

	s := &Socket{
		path: path,
		conn: conn,
		log:  logger.With().Str("component", "transport").Str("socket", path).Logger(),
	}
	s.log.Info().Msg("connected to socket")
	return s, nil
}

// ReadByte blocks for the next byte; io.EOF once the peer closes.
func (s *Socket) ReadByte() (byte, error) {
	for {
		n, err := s.conn.Read(s.buf[:])
		if n == 1 {
			return s.buf[0], nil
		}
		if err == io.EOF {
			return 0, io.EOF
		}
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", s.path, err)
		}
	}
}

// Restore is a no-op.
func (s *Socket) Restore() error {
	return nil
}

// Close closes the connection.
func (s *Socket) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
		s.log.Info().Msg("socket closed")
	})
	return s.closeErr
}
