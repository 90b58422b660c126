/*
NAME
  gaussian.go

DESCRIPTION
  gaussian.go defines the data types shared by the ply, transform,
  priority and splat packages: the PLY-sourced intermediate record and
  the fixed-layout output record it is transformed into.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

// Package gaussian defines the record types shared across the
// conversion pipeline: the PLY-sourced Record and the fixed-layout
// output Point.
package gaussian

// ShC0 is the zeroth-order spherical harmonic constant, 1/(2*sqrt(pi)),
// used to map a DC SH coefficient onto a color channel.
const ShC0 = 0.28209479177387814

// PointSize is the size in bytes of a packed Point.
const PointSize = 32

// Byte offsets of each field within a packed Point.
const (
	OffsetPosition = 0
	OffsetScale    = 12
	OffsetColor    = 24
	OffsetRotation = 28
)

// Record is the source-of-truth record produced by the PLY reader for
// a single vertex. All fields are read directly from PLY properties;
// no transform has yet been applied.
type Record struct {
	Position     [3]float32 // x, y, z
	ScaleLog     [3]float32 // scale_0, scale_1, scale_2; physical scale is exp(ScaleLog)
	RotRaw       [4]float32 // rot_0..rot_3, opaque quaternion components in header-declared order
	OpacityLogit float32    // opacity; sigmoid(OpacityLogit) gives alpha in (0,1)
	ShDC         [3]float32 // f_dc_0, f_dc_1, f_dc_2
}

// Point is the fixed 32-byte output record described by the SPLAT
// format: linear position and scale, 8-bit RGBA color, and an 8-bit
// quantized rotation quaternion.
type Point struct {
	Position [3]float32
	Scale    [3]float32
	Color    [4]uint8 // R, G, B, A
	Rotation [4]uint8 // quantized quaternion components, header-declared order
}
