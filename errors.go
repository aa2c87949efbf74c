package reveal

import "errors"

var (
	// ErrMissingElement marks a feature skipped because an element it needs
	// is not in the document. Never fatal.
	ErrMissingElement = errors.New("reveal: missing element")

	// ErrReadiness marks a rejected or timed-out readiness signal.
	// Initialization proceeds with the geometry available.
	ErrReadiness = errors.New("reveal: readiness signal failed")

	// ErrBadBoundary is returned when a boundary string cannot be parsed.
	ErrBadBoundary = errors.New("reveal: bad trigger boundary")

	// ErrBadConfig wraps configuration validation failures.
	ErrBadConfig = errors.New("reveal: bad config")
)
