// Package errs defines the sentinel errors shared across kernelcall packages.
//
// Errors returned by the library wrap one of these sentinels using
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is
// regardless of the detail text attached at the failure site.
package errs

import "errors"

var (
	// ErrInvalidInput indicates the compressed input is corrupted, truncated,
	// or not a stream of the expected compression format. Growing the output
	// buffer cannot fix this class of failure.
	ErrInvalidInput = errors.New("invalid compressed input")

	// ErrMalformedRecord indicates decompressed bytes do not parse as a
	// kernel call record.
	ErrMalformedRecord = errors.New("malformed kernel call record")

	// ErrDecodedTooLarge indicates the decompressed output would exceed the
	// configured maximum size.
	ErrDecodedTooLarge = errors.New("decoded data exceeds maximum size")
)
