package session

import "errors"

var (
	// ErrNotAuthenticated indicates an operation that requires a logged-in
	// session was called while logged out
	ErrNotAuthenticated = errors.New("session.not_authenticated")
)
