package view

import "errors"

var (
	// ErrNotFound means the requested game id is absent from the store.
	ErrNotFound = errors.New("game not found")
	// ErrBusy means an equivalent request is already in flight.
	ErrBusy = errors.New("request already in flight")
	// ErrNoAnalysis means the operation needs analysis that has not arrived.
	ErrNoAnalysis = errors.New("analysis not available")
	// ErrBadIndex means a move selection was out of range.
	ErrBadIndex = errors.New("move index out of range")
)
