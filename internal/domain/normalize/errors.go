package normalize

import "errors"

// Sentinel kinds for normalization errors. Both are fatal for the row
// they name; the run continues without it.
var (
	ErrUnrecognizedTableType = errors.New("unrecognized table type")
	ErrMissingRequiredField  = errors.New("missing required field")
)
