package ctrl

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Conn operations. Anything not matching one of
// these (or *ConnectError) is a transport-level I/O failure; callers should
// discard the Conn and open a new one.
var (
	// ErrTimeout indicates the deadline expired before a reply or event
	// arrived. The Conn remains usable; callers may retry.
	ErrTimeout = errors.New("ctrl: deadline exceeded")

	// ErrBusy indicates a request was attempted while another request was
	// already in flight on the same Conn.
	ErrBusy = errors.New("ctrl: request already in flight")

	// ErrClosed indicates an operation on a closed Conn.
	ErrClosed = errors.New("ctrl: connection closed")

	// ErrProtocol indicates the control channel closed in the middle of a
	// command exchange.
	ErrProtocol = errors.New("ctrl: control channel closed mid-exchange")
)

// ConnectError reports a failure to establish the control session: the
// daemon socket is missing, the local socket could not be bound, or the
// socket directory is not usable. It is fatal; retrying without fixing the
// underlying condition will not help.
type ConnectError struct {
	Path string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("ctrl: connect %s: %v", e.Path, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }
