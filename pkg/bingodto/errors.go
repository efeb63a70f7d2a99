package bingodto

import "errors"

var (
	// ErrIndexOutOfRange is returned for cell indices outside [0, n*n).
	ErrIndexOutOfRange = errors.New("cell index out of range")
	// ErrSelectionPending is returned when a toggle arrives while another
	// cell is still waiting for its annotation.
	ErrSelectionPending = errors.New("another selection is awaiting annotation")
	// ErrNoPendingSelection is returned when a commit targets a cell that
	// never entered the pending state.
	ErrNoPendingSelection = errors.New("no pending selection for cell")
	// ErrNoLocalState is returned by sync when no local snapshot exists yet.
	ErrNoLocalState = errors.New("no local board state to sync")
	// ErrUnknownPlayer is returned when a login name is not on the roster.
	ErrUnknownPlayer = errors.New("player not on roster")
	// ErrMalformedDocument marks a remote document that did not decode.
	ErrMalformedDocument = errors.New("malformed remote document")
)

type DomainError struct {
	Code      string
	Message   string
	Retryable bool
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "bingo service error"
}
