package bars

import "errors"

var (
	// ErrConfiguration reports a missing or invalid column mapping.
	ErrConfiguration = errors.New("invalid column configuration")

	// ErrInvalidBarSize reports a malformed or non-positive bar-size parameter.
	ErrInvalidBarSize = errors.New("invalid bar size")

	// ErrSchema reports an input table that is missing a mapped column or
	// carries an incompatible type.
	ErrSchema = errors.New("input schema mismatch")

	// ErrEmptyBar reports an attempt to close a bar with zero ticks. The
	// engine only closes after at least one ingest, so seeing this error
	// outside the package indicates an engine bug.
	ErrEmptyBar = errors.New("close of empty bar")
)
