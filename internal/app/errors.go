package app

import "errors"

// Structural configuration errors. These abort the run before any
// fetching begins; everything else accumulates as diagnostics.
var (
	ErrEmptySeasonRange = errors.New("empty season range")
	ErrUnknownTableType = errors.New("unknown table type")
	ErrNoProducers      = errors.New("no raw row producers configured")
)
