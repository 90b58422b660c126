/*
NAME
  transform.go

DESCRIPTION
  transform.go implements the pure per-record transform from a
  PLY-sourced Gaussian record to the fixed-layout output Point:
  sigmoid opacity, exp scale, DC spherical-harmonic color, and
  8-bit quaternion quantization.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

// Package transform implements the deterministic, side-effect free
// mapping from a gaussian.Record to a gaussian.Point.
package transform

import (
	"math"

	"github.com/bastikohn/ply2splat/gaussian"
)

// quantScale and quantOffset map a unit quaternion component in
// [-1, +1] onto a byte in [0, 255]: byte = round(c*quantScale + quantOffset).
const (
	quantScale  = 128
	quantOffset = 128
)

// Point converts a single Gaussian record into its packed SPLAT
// representation. The conversion is pure and independent per record:
// calling Point concurrently on disjoint records from multiple
// goroutines is safe.
func Point(r gaussian.Record) gaussian.Point {
	var p gaussian.Point

	p.Position = r.Position

	for i := 0; i < 3; i++ {
		p.Scale[i] = float32(math.Exp(float64(r.ScaleLog[i])))
	}

	alpha := sigmoid(float64(r.OpacityLogit))
	p.Color[3] = quantizeUnit(alpha)

	for i := 0; i < 3; i++ {
		c := 0.5 + gaussian.ShC0*float64(r.ShDC[i])
		p.Color[i] = quantizeUnit(c)
	}

	p.Rotation = quantizeQuaternion(r.RotRaw)

	return p
}

// Alpha returns the float opacity sigmoid(logit) in (0, 1), the
// pre-quantization value the Priority Sorter uses as its importance
// weight (spec: "use the pre-round value to avoid quantization-induced
// ties dominating the sort").
func Alpha(logit float32) float64 {
	return sigmoid(float64(logit))
}

// sigmoid returns 1 / (1 + exp(-x)) computed in binary64, matching
// the reference's use of double precision for the exponential.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// quantizeUnit clamps c to [0, 1], scales by 255 and rounds to the
// nearest integer, clamping the result to [0, 255].
func quantizeUnit(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	if c < 0 {
		c = 0
	} else if c > 1 {
		c = 1
	}
	return uint8(clampRound(c*255, 0, 255))
}

// quantizeQuaternion normalizes q and packs each component into a
// byte via round(q_i*128 + 128), clamped to [0, 255]. A zero-norm
// quaternion is quantized as the unnormalized zero vector, yielding
// (128, 128, 128, 128); this is intentional bit-exact parity with the
// reference implementation's documented (if surprising) behavior, see
// the Open Question decisions in SPEC_FULL.md.
func quantizeQuaternion(q [4]float32) [4]uint8 {
	var n float64
	for _, c := range q {
		n += float64(c) * float64(c)
	}
	n = math.Sqrt(n)

	var out [4]uint8
	if n == 0 {
		for i := range q {
			out[i] = uint8(clampRound(float64(q[i])*quantScale+quantOffset, 0, 255))
		}
		return out
	}
	for i, c := range q {
		v := (float64(c) / n) * quantScale
		out[i] = uint8(clampRound(v+quantOffset, 0, 255))
	}
	return out
}

// clampRound rounds v to the nearest integer, ties to even, then
// clamps to [lo, hi].
func clampRound(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	v = math.RoundToEven(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
