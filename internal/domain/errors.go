package domain

import "errors"

// Load-cycle failure taxonomy. Transport covers non-success HTTP statuses and
// HTML-shaped bodies (a sheet whose sharing permissions are misconfigured
// returns a login page instead of data); Decode covers malformed table
// envelopes. Either one aborts the whole load and leaves the previously
// loaded observations intact. Single-field parse failures are not errors at
// all; the field just comes out absent.
var (
	ErrTransport = errors.New("transport failure")
	ErrDecode    = errors.New("decode failure")
)
