/*
NAME
  decode.go

DESCRIPTION
  decode.go decodes one element record at a time, in either ASCII or
  binary_little_endian form, extracting only the scalar property
  values a caller has bound to a slot and discarding everything else
  (including list properties) without materializing them.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

package ply

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bastikohn/ply2splat/internal/plyerr"
)

// recordDecoder reads successive records of one element from br,
// extracting bound scalar properties into a reusable slots array.
type recordDecoder struct {
	br      *bufio.Reader
	format  format
	props   []propSpec
	binding map[string]int // property name -> slot index in slots
	tokBuf  []string
}

func newRecordDecoder(br *bufio.Reader, f format, elem elementSpec, binding map[string]int) *recordDecoder {
	return &recordDecoder{br: br, format: f, props: elem.props, binding: binding}
}

// next decodes one record, writing bound values into slots (which the
// caller owns and must size to hold every bound index) and discarding
// everything unbound, including list property payloads.
func (d *recordDecoder) next(slots []float64) error {
	if d.format == formatASCII {
		return d.nextASCII(slots)
	}
	return d.nextBinary(slots)
}

func (d *recordDecoder) nextASCII(slots []float64) error {
	line, err := d.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			// Last line in the file with no trailing newline.
		} else if err == io.EOF {
			return errors.Wrap(plyerr.ErrTruncatedBody, "unexpected end of vertex data")
		} else {
			return errors.Wrap(err, "ply: reading ascii record")
		}
	}
	d.tokBuf = strings.Fields(line)
	tokens := d.tokBuf
	i := 0
	next := func() (string, error) {
		if i >= len(tokens) {
			return "", errors.Wrap(plyerr.ErrTruncatedBody, "not enough values on vertex line")
		}
		tok := tokens[i]
		i++
		return tok, nil
	}

	for _, p := range d.props {
		if p.isList {
			countTok, err := next()
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(countTok)
			if err != nil || n < 0 {
				return errors.Wrapf(plyerr.ErrTruncatedBody, "invalid list count %q", countTok)
			}
			for k := 0; k < n; k++ {
				if _, err := next(); err != nil {
					return err
				}
			}
			continue
		}

		tok, err := next()
		if err != nil {
			return err
		}
		if slot, ok := d.binding[p.name]; ok {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return errors.Wrapf(plyerr.ErrTruncatedBody, "invalid numeric value %q for property %q", tok, p.name)
			}
			slots[slot] = v
		}
	}
	return nil
}

func (d *recordDecoder) nextBinary(slots []float64) error {
	var buf [8]byte
	for _, p := range d.props {
		if p.isList {
			n, err := d.readScalar(p.countType, &buf)
			if err != nil {
				return err
			}
			count := int(n)
			for k := 0; k < count; k++ {
				if _, err := d.readScalar(p.valueType, &buf); err != nil {
					return err
				}
			}
			continue
		}

		v, err := d.readScalar(p.valueType, &buf)
		if err != nil {
			return err
		}
		if slot, ok := d.binding[p.name]; ok {
			slots[slot] = v
		}
	}
	return nil
}

// readScalar reads one binary scalar of type t from d.br, returning it
// widened to float64. buf is reusable scratch space of at least 8
// bytes.
func (d *recordDecoder) readScalar(t scalarType, buf *[8]byte) (float64, error) {
	n := t.size()
	b := buf[:n]
	if _, err := io.ReadFull(d.br, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, errors.Wrap(plyerr.ErrTruncatedBody, "unexpected end of vertex data")
		}
		return 0, errors.Wrap(err, "ply: reading binary record")
	}
	switch t {
	case typeInt8:
		return float64(int8(b[0])), nil
	case typeUint8:
		return float64(b[0]), nil
	case typeInt16:
		return float64(int16(binary.LittleEndian.Uint16(b))), nil
	case typeUint16:
		return float64(binary.LittleEndian.Uint16(b)), nil
	case typeInt32:
		return float64(int32(binary.LittleEndian.Uint32(b))), nil
	case typeUint32:
		return float64(binary.LittleEndian.Uint32(b)), nil
	case typeFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	case typeFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	default:
		return 0, errors.Wrap(plyerr.ErrInternal, "unknown scalar type")
	}
}
