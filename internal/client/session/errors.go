package session

import "errors"

var (
	// ErrMalformedToken marks a token whose payload could not be decoded
	// into a user identity.
	ErrMalformedToken = errors.New("malformed token")

	// ErrNoSession is returned when a session is read from a context that
	// was never given one. It signals a wiring bug, not a user error.
	ErrNoSession = errors.New("no session in context")

	// ErrClosed is returned by mutators after Close.
	ErrClosed = errors.New("session closed")
)
