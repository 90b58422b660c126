/*
NAME
  convert.go

DESCRIPTION
  convert.go is the public API surface of the conversion engine: it
  drives the PLY Reader, Transformer, Priority Sorter and Packer/Writer
  stages, and exposes file-to-file, bytes-to-bytes and buffer-loading
  entry points plus a read-only summary of an already-produced SPLAT
  buffer.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

// Package convert is the orchestrator: it wires the ply, transform,
// priority and splat packages into the four public conversion
// operations, and exposes a diagnostic Stats summary over a SPLAT
// buffer.
package convert

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/utils/logging"

	"github.com/bastikohn/ply2splat/gaussian"
	"github.com/bastikohn/ply2splat/internal/workerpool"
	"github.com/bastikohn/ply2splat/ply"
	"github.com/bastikohn/ply2splat/priority"
	"github.com/bastikohn/ply2splat/splat"
	"github.com/bastikohn/ply2splat/transform"
)

// Options controls a single conversion call. The zero value is valid:
// Sort defaults to false, Workers defaults to runtime.GOMAXPROCS(0),
// and Logger defaults to a discarding logger.
type Options struct {
	// Sort enables the visibility-priority reorder of output points.
	// When false, output is in PLY declaration order.
	Sort bool

	// Workers caps the number of goroutines used to fan out the
	// per-record transform and the priority key computation. Zero
	// means runtime.GOMAXPROCS(0).
	Workers int

	// Logger receives Debug/Info tracing of the conversion; nil means
	// no logging.
	Logger logging.Logger
}

func (o Options) logger() logging.Logger {
	if o.Logger == nil {
		return logging.New(int8(logging.Info), io.Discard, false)
	}
	return o.Logger
}

// ConvertFileToFile reads the PLY file at inputPath and writes its
// SPLAT conversion to outputPath, returning the number of splats
// written. Both sides are buffered streaming I/O.
func ConvertFileToFile(inputPath, outputPath string, opts Options) (uint64, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, errors.Wrapf(err, "convert: opening input %q", inputPath)
	}
	defer in.Close()

	pts, err := convertToPoints(in, opts)
	if err != nil {
		return 0, err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, errors.Wrapf(err, "convert: creating output %q", outputPath)
	}
	defer out.Close()

	w := splat.NewWriter(out)
	for _, p := range pts {
		if err := w.WritePoint(p); err != nil {
			return 0, errors.Wrap(err, "convert: writing output")
		}
	}
	if err := w.Flush(); err != nil {
		return 0, err
	}

	return uint64(len(pts)), nil
}

// ConvertBytesToBytes converts an in-memory PLY byte buffer into an
// in-memory SPLAT byte buffer, returning the bytes and the splat
// count. It never panics and never loops unboundedly regardless of
// the contents of plyBytes; any malformed input produces an error.
func ConvertBytesToBytes(plyBytes []byte, opts Options) ([]byte, uint64, error) {
	pts, err := convertToPoints(bytes.NewReader(plyBytes), opts)
	if err != nil {
		return nil, 0, err
	}

	buf := splat.NewBuffer(len(pts))
	packPoints(buf, pts, opts)

	return buf.Bytes(), uint64(len(pts)), nil
}

// LoadSplatsFromPLY converts the PLY file at path into an in-memory,
// indexable splat.Buffer.
func LoadSplatsFromPLY(path string, opts Options) (*splat.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "convert: opening input %q", path)
	}
	defer f.Close()

	pts, err := convertToPoints(f, opts)
	if err != nil {
		return nil, err
	}

	buf := splat.NewBuffer(len(pts))
	packPoints(buf, pts, opts)
	return buf, nil
}

// LoadSplatsFromSplat loads a SPLAT file at path into an in-memory,
// indexable splat.Buffer without any conversion, validating that its
// length is a multiple of gaussian.PointSize.
func LoadSplatsFromSplat(path string) (*splat.Buffer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "convert: reading %q", path)
	}
	buf, err := splat.FromBytes(b)
	if err != nil {
		return nil, errors.Wrapf(err, "convert: loading %q", path)
	}
	return buf, nil
}

// convertToPoints runs the Parsing -> Transforming -> (Sorting)
// pipeline phases and returns the resulting Point slice in final
// output order. Writing (Packing) is the caller's responsibility, so
// that ConvertFileToFile can stream straight to a Writer without an
// intervening Buffer allocation.
func convertToPoints(src io.Reader, opts Options) ([]gaussian.Point, error) {
	log := opts.logger()

	r, err := ply.NewReader(src, log)
	if err != nil {
		return nil, err
	}

	n := r.Count()
	log.Debug("convert: vertex count discovered", "count", n)

	// The header's declared count is untrusted input: a malformed or
	// adversarial header can declare an arbitrarily large count
	// backed by a tiny or empty body. Growing recs via append, capped
	// at a sane initial capacity, means memory use tracks the data
	// actually present rather than the declared count; a truncated
	// body fails at Next() long before an implausible allocation is
	// attempted.
	const maxInitialCap = 1 << 16
	initialCap := n
	if initialCap > maxInitialCap {
		initialCap = maxInitialCap
	}
	recs := make([]gaussian.Record, 0, initialCap)
	for i := 0; i < n; i++ {
		rec, err := r.Next()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	pts := make([]gaussian.Point, n)
	var alphas []float64
	if opts.Sort {
		alphas = make([]float64, n)
	}

	workerpool.Map(n, opts.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			pts[i] = transform.Point(recs[i])
			if opts.Sort {
				alphas[i] = transform.Alpha(recs[i].OpacityLogit)
			}
		}
	})

	if opts.Sort {
		keys := priority.Keys(pts, alphas, opts.Workers)
		priority.Sort(pts, keys)
		log.Debug("convert: priority sort applied", "count", n)
	}

	return pts, nil
}

// packPoints writes pts into buf's disjoint slots in parallel; pts and
// buf must agree in length.
func packPoints(buf *splat.Buffer, pts []gaussian.Point, opts Options) {
	workerpool.Map(len(pts), opts.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			buf.Slot(i, pts[i])
		}
	})
}

// Summary is a read-only diagnostic over an already-produced SPLAT
// buffer: importance-key statistics and the importance-weighted
// center of mass. It is not part of the SPLAT format and does not
// reconstruct any value lost to quantization.
type Summary struct {
	Count          int
	MinImportance  float64
	MeanImportance float64
	MaxImportance  float64
	CenterOfMass   [3]float64
}

// Stats computes a Summary over buf by re-deriving an approximate
// importance key from each record's already-quantized color alpha
// (quantAlpha/255) and linear scale. It never errs: an empty buffer
// yields a zeroed Summary.
func Stats(buf *splat.Buffer) Summary {
	n := buf.Len()
	if n == 0 {
		return Summary{}
	}

	keys := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)

	for i := 0; i < n; i++ {
		p, err := buf.At(i)
		if err != nil {
			continue
		}
		alpha := float64(p.Color[3]) / 255
		keys[i] = priority.Importance(p.Scale, alpha)
		xs[i] = float64(p.Position[0])
		ys[i] = float64(p.Position[1])
		zs[i] = float64(p.Position[2])
	}

	weights := normalizeWeights(keys)

	return Summary{
		Count:          n,
		MinImportance:  floats.Min(keys),
		MeanImportance: stat.Mean(keys, nil),
		MaxImportance:  floats.Max(keys),
		CenterOfMass: [3]float64{
			stat.Mean(xs, weights),
			stat.Mean(ys, weights),
			stat.Mean(zs, weights),
		},
	}
}

// normalizeWeights returns keys unchanged as weights unless every key
// is zero or negative, in which case nil is returned so stat.Mean
// falls back to an unweighted mean.
func normalizeWeights(keys []float64) []float64 {
	for _, k := range keys {
		if k > 0 {
			return clampNonNegative(keys)
		}
	}
	return nil
}

// clampNonNegative returns a copy of keys with negative values floored
// to zero, since stat.Mean requires non-negative weights.
func clampNonNegative(keys []float64) []float64 {
	out := make([]float64, len(keys))
	for i, k := range keys {
		if k > 0 {
			out[i] = k
		}
	}
	return out
}
