package config

import "errors"

// Sentinel kinds for this package. These allow errors.Is/As from
// callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
)
