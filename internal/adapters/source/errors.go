package source

import "errors"

// Sentinel kinds for scrape errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected http status")
	ErrTableNotFound    = errors.New("stat table not found in page")
	ErrUnservedTable    = errors.New("table type not served by source")
)
