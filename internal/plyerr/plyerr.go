/*
NAME
  plyerr.go

DESCRIPTION
  plyerr.go defines the sentinel error taxonomy shared by the ply,
  splat and convert packages.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

// Package plyerr defines the sentinel errors shared across the
// conversion pipeline, following the error taxonomy of the
// specification: IoError, PlyFormatError, MissingProperty,
// InvalidLength and InternalError.
package plyerr

import "fmt"

var (
	// ErrUnsupportedFormat is returned when a PLY header declares a
	// format variant other than ascii 1.0 or binary_little_endian 1.0.
	ErrUnsupportedFormat = fmt.Errorf("ply: unsupported format variant")

	// ErrTruncatedBody is returned when fewer vertex records are
	// available than the header's declared count.
	ErrTruncatedBody = fmt.Errorf("ply: truncated vertex body")

	// ErrMalformedHeader is returned for a header that cannot be
	// parsed as PLY at all.
	ErrMalformedHeader = fmt.Errorf("ply: malformed header")

	// ErrInvalidLength is returned by the SPLAT inverse parser when
	// given a byte slice whose length is not a multiple of
	// gaussian.PointSize.
	ErrInvalidLength = fmt.Errorf("splat: length not a multiple of record size")

	// ErrInternal marks an invariant violation that should be
	// unreachable on any valid input.
	ErrInternal = fmt.Errorf("ply2splat: internal error")
)

// MissingProperty reports that a required PLY vertex property was not
// declared in the header.
func MissingProperty(name string) error {
	return fmt.Errorf("ply: missing required property %q", name)
}
