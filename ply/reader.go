/*
NAME
  reader.go

DESCRIPTION
  reader.go implements the streaming PLY reader: header parsing,
  schema discovery and name-based property binding, skipping of any
  elements preceding the vertex element, and a Next method that yields
  one gaussian.Record per call until the declared vertex count is
  exhausted.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

// Package ply implements a streaming reader for the PLY polygon file
// format, specialized to discover and decode the "vertex" element
// properties a Gaussian Splatting scene requires, tolerating arbitrary
// property declaration order and any number of extra properties or
// elements.
package ply

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"

	"github.com/bastikohn/ply2splat/gaussian"
	"github.com/bastikohn/ply2splat/internal/plyerr"
)

// readBufSize is the minimum buffered read-ahead the reader maintains
// over its source, per the spec's "large read-ahead (>= 1 MiB)"
// requirement.
const readBufSize = 1 << 20 // 1 MiB

// Reader discovers the vertex element schema of a PLY stream and
// yields its records one at a time via Next.
type Reader struct {
	br      *bufio.Reader
	log     logging.Logger
	format  format
	decoder *recordDecoder
	count   int
	read    int
}

// NewReader parses the PLY header from src, binds the vertex element's
// required properties by name, and skips the body of any elements
// declared before "vertex". log may be nil, in which case parsing is
// silent.
//
// NewReader returns plyerr.ErrMalformedHeader or
// plyerr.ErrUnsupportedFormat for a structurally invalid or
// unsupported header, and the error built by plyerr.MissingProperty
// naming the first required property absent from the vertex element.
func NewReader(src io.Reader, log logging.Logger) (*Reader, error) {
	if log == nil {
		log = logging.New(int8(logging.Info), io.Discard, false)
	}

	br := bufio.NewReaderSize(src, readBufSize)
	h, err := parseHeader(br)
	if err != nil {
		return nil, err
	}
	log.Debug("ply: header parsed", "elements", len(h.elements))

	vertexIdx := -1
	for i, e := range h.elements {
		if e.name == "vertex" {
			vertexIdx = i
			break
		}
	}
	if vertexIdx == -1 {
		return nil, errors.Wrap(plyerr.ErrMalformedHeader, "no vertex element declared")
	}

	binding, err := bindVertexProps(h.elements[vertexIdx])
	if err != nil {
		return nil, err
	}

	r := &Reader{br: br, log: log, format: h.format, count: h.elements[vertexIdx].count}

	// Skip the body of every element declared before "vertex"; we have
	// no use for other elements and the spec calls for ignoring them.
	for i := 0; i < vertexIdx; i++ {
		if err := skipElement(br, h.format, h.elements[i]); err != nil {
			return nil, err
		}
	}

	r.decoder = newRecordDecoder(br, h.format, h.elements[vertexIdx], binding)
	return r, nil
}

// Count returns the number of vertex records declared by the header,
// regardless of how many have been consumed so far.
func (r *Reader) Count() int { return r.count }

// Next decodes and returns the next Gaussian record. It returns io.EOF
// once the declared vertex count has been consumed.
func (r *Reader) Next() (gaussian.Record, error) {
	if r.read >= r.count {
		return gaussian.Record{}, io.EOF
	}

	var slots [numSlots]float64
	if err := r.decoder.next(slots[:]); err != nil {
		return gaussian.Record{}, err
	}
	r.read++

	return gaussian.Record{
		Position:     [3]float32{float32(slots[slotX]), float32(slots[slotY]), float32(slots[slotZ])},
		ScaleLog:     [3]float32{float32(slots[slotScale0]), float32(slots[slotScale1]), float32(slots[slotScale2])},
		RotRaw:       [4]float32{float32(slots[slotRot0]), float32(slots[slotRot1]), float32(slots[slotRot2]), float32(slots[slotRot3])},
		OpacityLogit: float32(slots[slotOpacity]),
		ShDC:         [3]float32{float32(slots[slotFDC0]), float32(slots[slotFDC1]), float32(slots[slotFDC2])},
	}, nil
}

// bindVertexProps maps each of requiredVertexProps to the slot index
// decoded records must write it to, verifying every required property
// is present and declared as a 4-byte floating point scalar. The first
// missing property, in requiredVertexProps order, is named in the
// returned error.
func bindVertexProps(elem elementSpec) (map[string]int, error) {
	present := make(map[string]scalarType, len(elem.props))
	for _, p := range elem.props {
		if !p.isList {
			present[p.name] = p.valueType
		}
	}

	binding := make(map[string]int, numSlots)
	for slot, name := range requiredVertexProps {
		t, ok := present[name]
		if !ok {
			return nil, plyerr.MissingProperty(name)
		}
		if t != typeFloat32 {
			return nil, errors.Wrapf(plyerr.ErrMalformedHeader, "property %q must be float32, declared as a different type", name)
		}
		binding[name] = slot
	}
	return binding, nil
}

// skipElement consumes every record of elem from br without
// extracting any values.
func skipElement(br *bufio.Reader, f format, elem elementSpec) error {
	// A binary record with no properties occupies zero bytes, so there
	// is nothing to consume however large the declared count is.
	if f == formatBinaryLE && len(elem.props) == 0 {
		return nil
	}
	d := newRecordDecoder(br, f, elem, nil)
	var scratch [numSlots]float64
	for i := 0; i < elem.count; i++ {
		if err := d.next(scratch[:]); err != nil {
			return err
		}
	}
	return nil
}
