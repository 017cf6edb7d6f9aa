package converter

import "errors"

// Error kinds the orchestrator can surface internally. All of them
// collapse to a false return from Convert/ConvertForRequest; none of
// them are retried internally.
var (
	ErrInvalidInput    = errors.New("converter: invalid input")
	ErrDataUnavailable = errors.New("converter: data unavailable")
	ErrCoverageFailure = errors.New("converter: lattice coverage failure")
)
