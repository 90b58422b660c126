/*
NAME
  splat.go

DESCRIPTION
  splat.go implements the fixed 32-byte SPLAT record packer/writer and
  the read-only inverse parser that turns a SPLAT byte buffer back
  into inspectable records.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

// Package splat implements the headerless, fixed 32-byte-per-record
// SPLAT container: packing Points into a contiguous byte buffer,
// writing that buffer to a sink, and parsing a SPLAT buffer back into
// inspectable records.
package splat

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/bastikohn/ply2splat/gaussian"
	"github.com/bastikohn/ply2splat/internal/plyerr"
)

// writeBufSize is the buffered-write chunk size used when streaming a
// Buffer to an io.Writer.
const writeBufSize = 1 << 20 // 1 MiB

// Buffer is an owned, contiguous byte sequence of length
// gaussian.PointSize*N, the in-memory representation of a SPLAT file.
type Buffer struct {
	data []byte
}

// NewBuffer allocates a Buffer able to hold n points, zero-filled.
func NewBuffer(n int) *Buffer {
	return &Buffer{data: make([]byte, n*gaussian.PointSize)}
}

// FromBytes wraps an existing SPLAT byte slice for inverse parsing. It
// does not copy b; callers must not mutate b afterwards if they intend
// to treat the Buffer as immutable. It returns plyerr.ErrInvalidLength
// if len(b) is not a multiple of gaussian.PointSize.
func FromBytes(b []byte) (*Buffer, error) {
	if len(b)%gaussian.PointSize != 0 {
		return nil, errors.Wrapf(plyerr.ErrInvalidLength, "length %d", len(b))
	}
	return &Buffer{data: b}, nil
}

// Len returns the number of points held by the Buffer.
func (b *Buffer) Len() int { return len(b.data) / gaussian.PointSize }

// Bytes returns the Buffer's backing array. The caller takes ownership
// of the returned slice; the Buffer must not be used afterwards if the
// caller mutates it.
func (b *Buffer) Bytes() []byte { return b.data }

// Slot writes p into the i'th 32-byte record of the Buffer. Callers
// (convert's parallel packing fan-out) must address disjoint indices
// concurrently; Slot performs no locking.
func (b *Buffer) Slot(i int, p gaussian.Point) {
	off := i * gaussian.PointSize
	rec := b.data[off : off+gaussian.PointSize]
	putPoint(rec, p)
}

// At decodes the i'th 32-byte record into a Point. It is a read-only
// inverse of Slot/putPoint; no inverse of the quantization or color
// transforms is attempted, so the returned Point's Color and Rotation
// fields are the raw quantized bytes, not the original float values.
func (b *Buffer) At(i int) (gaussian.Point, error) {
	if i < 0 || i >= b.Len() {
		return gaussian.Point{}, errors.Wrapf(plyerr.ErrInternal, "index %d out of range [0,%d)", i, b.Len())
	}
	off := i * gaussian.PointSize
	return getPoint(b.data[off : off+gaussian.PointSize]), nil
}

// Writer buffers Points and flushes them to an underlying io.Writer in
// large chunks, avoiding one syscall per record.
type Writer struct {
	w   *bufio.Writer
	buf [gaussian.PointSize]byte
}

// NewWriter returns a Writer that streams packed records to dst using
// a 1 MiB write buffer.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(dst, writeBufSize)}
}

// WritePoint packs and writes a single Point.
func (w *Writer) WritePoint(p gaussian.Point) error {
	putPoint(w.buf[:], p)
	_, err := w.w.Write(w.buf[:])
	if err != nil {
		return errors.Wrap(err, "splat: write point")
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return errors.Wrap(w.w.Flush(), "splat: flush")
}

// putPoint packs p into the 32 bytes of rec at the offsets defined in
// gaussian.Offset*, little-endian, dense, no padding.
func putPoint(rec []byte, p gaussian.Point) {
	_ = rec[gaussian.PointSize-1] // bounds check hint

	for i, v := range p.Position {
		binary.LittleEndian.PutUint32(rec[gaussian.OffsetPosition+4*i:], math.Float32bits(v))
	}
	for i, v := range p.Scale {
		binary.LittleEndian.PutUint32(rec[gaussian.OffsetScale+4*i:], math.Float32bits(v))
	}
	copy(rec[gaussian.OffsetColor:gaussian.OffsetColor+4], p.Color[:])
	copy(rec[gaussian.OffsetRotation:gaussian.OffsetRotation+4], p.Rotation[:])
}

// getPoint is the inverse of putPoint.
func getPoint(rec []byte) gaussian.Point {
	var p gaussian.Point
	for i := range p.Position {
		p.Position[i] = math.Float32frombits(binary.LittleEndian.Uint32(rec[gaussian.OffsetPosition+4*i:]))
	}
	for i := range p.Scale {
		p.Scale[i] = math.Float32frombits(binary.LittleEndian.Uint32(rec[gaussian.OffsetScale+4*i:]))
	}
	copy(p.Color[:], rec[gaussian.OffsetColor:gaussian.OffsetColor+4])
	copy(p.Rotation[:], rec[gaussian.OffsetRotation:gaussian.OffsetRotation+4])
	return p
}
