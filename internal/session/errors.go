package session

import "errors"

var (
	// ErrNotFound reports an unknown session id at the orchestration
	// boundary. The caller must start a new session.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidState reports an operation called outside its valid
	// lifecycle state. Not retryable without a new session.
	ErrInvalidState = errors.New("operation invalid in current session state")

	// ErrAlreadyEnded reports a second end call on a finished session.
	ErrAlreadyEnded = errors.New("session already ended")
)
