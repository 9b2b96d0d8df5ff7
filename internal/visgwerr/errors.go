// Package visgwerr defines the terminal error taxonomy a Command can
// resolve with, delivered by viscacam through each Command's on_error
// callback so callers can errors.Is/errors.As instead of matching
// camera-reported byte codes.
package visgwerr

import "fmt"

// Code identifies why a Command resolved with on_error instead of
// on_complete.
type Code int

const (
	_ Code = iota
	Syntax          // camera-reported 0x02
	BufferFull      // camera-reported 0x03
	Cancelled       // camera-reported 0x04, or an IF-CLEAR/shutdown flush
	InvalidSocket   // camera-reported 0x05
	NotExecutable   // camera-reported 0x41
	Timeout         // synthesized by the stale-command GC
	Transport       // synthesized on transport close/error
	UnknownReported // any camera error byte not in the table above
)

func (c Code) String() string {
	switch c {
	case Syntax:
		return "SYNTAX"
	case BufferFull:
		return "BUFFER_FULL"
	case Cancelled:
		return "CANCELLED"
	case InvalidSocket:
		return "INVALID_SOCKET"
	case NotExecutable:
		return "NOT_EXECUTABLE"
	case Timeout:
		return "TIMEOUT"
	case Transport:
		return "TRANSPORT"
	default:
		return "UNKNOWN"
	}
}

// FromReported maps a camera ERROR-reply byte (§4.3) to a Code.
func FromReported(b byte) Code {
	switch b {
	case 0x02:
		return Syntax
	case 0x03:
		return BufferFull
	case 0x04:
		return Cancelled
	case 0x05:
		return InvalidSocket
	case 0x41:
		return NotExecutable
	default:
		return UnknownReported
	}
}

// Error is what a Command's on_error callback receives.
type Error struct {
	Code    Code
	Reason  string
	Wrapped error
}

func New(code Code, reason string) *Error {
	return &Error{Code: code, Reason: reason}
}

func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Reason: err.Error(), Wrapped: err}
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is lets errors.Is(err, visgwerr.Sentinel(visgwerr.Timeout)) work against
// a *Error by comparing codes instead of pointer identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(sentinelErr)
	return ok && e.Code == t.c
}

// Sentinel wraps a bare Code so it can be used on the right-hand side of
// errors.Is, e.g. errors.Is(err, visgwerr.Sentinel(visgwerr.Timeout)).
func Sentinel(c Code) error { return sentinelErr{c} }

type sentinelErr struct{ c Code }

func (s sentinelErr) Error() string { return s.c.String() }
