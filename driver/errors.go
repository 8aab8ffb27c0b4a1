package driver

import (
	"errors"
	"io/fs"
)

// Kind classifies a fatal error. Each kind has its own exit status.
type Kind int

const (
	ConfigError Kind = iota + 1
	TransportUnavailable
	PermissionDenied
	SinkUnavailable
	IoError
	EmitFailure
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "configuration error"
	case TransportUnavailable:
		return "transport unavailable"
	case PermissionDenied:
		return "permission denied"
	case SinkUnavailable:
		return "virtual device unavailable"
	case IoError:
		return "read error"
	case EmitFailure:
		return "emit failure"
	default:
		return "error"
	}
}

// ExitCode is the process status for k.
func (k Kind) ExitCode() int {
	switch k {
	case ConfigError:
		return 2
	case TransportUnavailable:
		return 3
	case PermissionDenied:
		return 4
	case SinkUnavailable:
		return 5
	case IoError:
		return 6
	case EmitFailure:
		return 7
	default:
		return 1
	}
}

// Error is a classified fatal error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError wraps err as a fatal error of kind k.
func newError(k Kind, op string, err error) *Error {
	return &Error{Kind: k, Op: op, Err: err}
}

// NewConfigError wraps a configuration problem.
func NewConfigError(op string, err error) *Error {
	return newError(ConfigError, op, err)
}

// KindOf returns the kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ExitCode maps err to a process exit status: 0 for nil, the kind's
// status for classified errors and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}

// acquireError classifies a failure to open a device.
func acquireError(unavailable Kind, op string, err error) *Error {
	if errors.Is(err, fs.ErrPermission) {
		return newError(PermissionDenied, op, err)
	}
	return newError(unavailable, op, err)
}
