package talent

import "errors"

// Error taxonomy surfaced to callers. The HTTP layer maps these to status
// codes with errors.Is; everything else is treated as an internal error.
var (
	// ErrUnauthenticated means no user exists for the identity key.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUnauthorized means the identity resolved but the role or ownership
	// does not allow the operation.
	ErrUnauthorized = errors.New("not authorized")
	// ErrNotFound means a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("already exists")
	// ErrExtractionFailed means the uploaded document produced no usable text.
	ErrExtractionFailed = errors.New("could not extract text from document")
	// ErrUpstream means an external service call failed.
	ErrUpstream = errors.New("upstream service failed")
	// ErrValidation means the input was malformed.
	ErrValidation = errors.New("invalid input")
)
