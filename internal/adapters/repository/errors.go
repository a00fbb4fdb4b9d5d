package repository

import "errors"

// Sentinel kinds for history store errors.
var (
	ErrNotFound = errors.New("player not found")
)
