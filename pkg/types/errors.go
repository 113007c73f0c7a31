// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds shared across components. Wrap them with fmt.Errorf and %w so
// callers can classify a failure with errors.Is while keeping the cause.
var (
	// ErrConfiguration reports a missing or invalid setting such as the API key.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound reports a missing input file.
	ErrNotFound = errors.New("not found")

	// ErrEmptyContext reports that no processed content is available.
	ErrEmptyContext = errors.New("no processed content")

	// ErrTransport reports a failed completion request.
	ErrTransport = errors.New("transport error")

	// ErrMalformedResponse reports a completion payload that does not match
	// the expected shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrIO reports a failed artifact read or write.
	ErrIO = errors.New("io error")
)

// Fatal reports whether err should abort the process at startup. Only
// configuration and missing-input errors are fatal; everything else is
// printed and the session continues.
func Fatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrNotFound)
}
