/*
NAME
  header.go

DESCRIPTION
  header.go parses a PLY header: the magic line, the format
  declaration (ascii or binary_little_endian only), and the element
  and property declarations, stopping at end_header. It is deliberately
  tolerant of comments, obj_info lines and unknown elements, and
  strict about everything the spec requires to be strict about.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

package ply

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bastikohn/ply2splat/internal/plyerr"
)

// format identifies the PLY body encoding.
type format int

const (
	formatASCII format = iota
	formatBinaryLE
)

// header is the fully parsed result of reading a PLY header.
type header struct {
	format   format
	elements []elementSpec
}

// parseHeader reads a PLY header from br, leaving br positioned
// exactly at the first byte of the body (ascii text or binary
// records). It returns plyerr.ErrMalformedHeader for structurally
// invalid headers and plyerr.ErrUnsupportedFormat for a recognized
// but unsupported format variant (big-endian binary).
func parseHeader(br *bufio.Reader) (*header, error) {
	line, err := readHeaderLine(br)
	if err != nil {
		return nil, errors.Wrap(plyerr.ErrMalformedHeader, "reading magic line: "+err.Error())
	}
	if line != "ply" {
		return nil, errors.Wrapf(plyerr.ErrMalformedHeader, "expected magic %q, got %q", "ply", line)
	}

	h := &header{}
	sawFormat := false
	var cur *elementSpec

	for {
		line, err := readHeaderLine(br)
		if err != nil {
			return nil, errors.Wrap(plyerr.ErrMalformedHeader, "reading header: "+err.Error())
		}

		switch {
		case line == "end_header":
			if !sawFormat {
				return nil, errors.Wrap(plyerr.ErrMalformedHeader, "missing format declaration")
			}
			return h, nil

		case line == "" || strings.HasPrefix(line, "comment") || strings.HasPrefix(line, "obj_info"):
			continue

		case strings.HasPrefix(line, "format"):
			f, err := parseFormatLine(line)
			if err != nil {
				return nil, err
			}
			h.format = f
			sawFormat = true

		case strings.HasPrefix(line, "element"):
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, errors.Wrapf(plyerr.ErrMalformedHeader, "malformed element line %q", line)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, errors.Wrapf(plyerr.ErrMalformedHeader, "invalid element count in %q", line)
			}
			h.elements = append(h.elements, elementSpec{name: fields[1], count: count})
			cur = &h.elements[len(h.elements)-1]

		case strings.HasPrefix(line, "property"):
			if cur == nil {
				return nil, errors.Wrapf(plyerr.ErrMalformedHeader, "property declared before any element: %q", line)
			}
			p, err := parsePropertyLine(line)
			if err != nil {
				return nil, err
			}
			cur.props = append(cur.props, p)

		default:
			return nil, errors.Wrapf(plyerr.ErrMalformedHeader, "unrecognized header line %q", line)
		}
	}
}

// parseFormatLine parses a "format <variant> <version>" line.
func parseFormatLine(line string) (format, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, errors.Wrapf(plyerr.ErrMalformedHeader, "malformed format line %q", line)
	}
	switch fields[1] {
	case "ascii":
		return formatASCII, nil
	case "binary_little_endian":
		return formatBinaryLE, nil
	case "binary_big_endian":
		return 0, errors.Wrap(plyerr.ErrUnsupportedFormat, "binary_big_endian")
	default:
		return 0, errors.Wrapf(plyerr.ErrUnsupportedFormat, "unknown format variant %q", fields[1])
	}
}

// parsePropertyLine parses either a scalar "property <type> <name>"
// line or a list "property list <count-type> <value-type> <name>"
// line.
func parsePropertyLine(line string) (propSpec, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return propSpec{}, errors.Wrapf(plyerr.ErrMalformedHeader, "malformed property line %q", line)
	}
	if fields[1] == "list" {
		if len(fields) != 5 {
			return propSpec{}, errors.Wrapf(plyerr.ErrMalformedHeader, "malformed list property line %q", line)
		}
		ct, ok := scalarTypeNames[fields[2]]
		if !ok {
			return propSpec{}, errors.Wrapf(plyerr.ErrMalformedHeader, "unknown list count type %q", fields[2])
		}
		vt, ok := scalarTypeNames[fields[3]]
		if !ok {
			return propSpec{}, errors.Wrapf(plyerr.ErrMalformedHeader, "unknown list value type %q", fields[3])
		}
		return propSpec{name: fields[4], isList: true, countType: ct, valueType: vt}, nil
	}

	if len(fields) != 3 {
		return propSpec{}, errors.Wrapf(plyerr.ErrMalformedHeader, "malformed property line %q", line)
	}
	vt, ok := scalarTypeNames[fields[1]]
	if !ok {
		return propSpec{}, errors.Wrapf(plyerr.ErrMalformedHeader, "unknown property type %q", fields[1])
	}
	return propSpec{name: fields[2], valueType: vt}, nil
}

// readHeaderLine reads one newline-terminated header line with
// trailing "\r\n" or "\n" and surrounding whitespace trimmed.
func readHeaderLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		// A final header line with no trailing newline is still
		// usable if we actually read something; otherwise this is
		// truncation or a genuine I/O error.
		if err != io.EOF || len(line) == 0 {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}
