package domain

import "errors"

var (
	// ErrInvalidQuery signals an empty or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidUser signals a missing user identifier.
	ErrInvalidUser = errors.New("invalid user id")
	// ErrInvalidText signals an empty or oversized moderation text.
	ErrInvalidText = errors.New("invalid text")
	// ErrInvalidImage signals missing image data for listing analysis.
	ErrInvalidImage = errors.New("invalid image data")
	// ErrProhibitedItem signals a listing photo showing an item the
	// marketplace does not allow.
	ErrProhibitedItem = errors.New("prohibited item")
	// ErrCompletionProvider signals a completion-service failure.
	ErrCompletionProvider = errors.New("completion provider error")
	// ErrMalformedCompletion signals completion output that failed
	// validation after parsing.
	ErrMalformedCompletion = errors.New("malformed completion response")
)
