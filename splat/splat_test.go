/*
NAME
  splat_test.go

DESCRIPTION
  splat_test.go tests packing/unpacking round-trips, buffer length
  invariants, and the inverse parser's handling of malformed lengths
  (scenario S6 and testable property 7).

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

package splat

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bastikohn/ply2splat/gaussian"
	"github.com/bastikohn/ply2splat/internal/plyerr"
)

func samplePoint(seed float32) gaussian.Point {
	return gaussian.Point{
		Position: [3]float32{seed, seed + 1, seed + 2},
		Scale:    [3]float32{seed * 2, seed * 3, seed * 4},
		Color:    [4]uint8{1, 2, 3, 4},
		Rotation: [4]uint8{200, 128, 50, 0},
	}
}

func TestSlotAtRoundTrip(t *testing.T) {
	buf := NewBuffer(2)
	p0, p1 := samplePoint(1), samplePoint(10)
	buf.Slot(0, p0)
	buf.Slot(1, p1)

	if buf.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", buf.Len())
	}
	if len(buf.Bytes()) != 2*gaussian.PointSize {
		t.Fatalf("len(Bytes()) = %d, want %d", len(buf.Bytes()), 2*gaussian.PointSize)
	}

	got0, err := buf.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p0, got0); diff != "" {
		t.Errorf("At(0) mismatch (-want +got):\n%s", diff)
	}

	got1, err := buf.At(1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p1, got1); diff != "" {
		t.Errorf("At(1) mismatch (-want +got):\n%s", diff)
	}
}

// TestFromBytesInvalidLength exercises testable property: InvalidLength
// on non-multiple-of-32 inputs.
func TestFromBytesInvalidLength(t *testing.T) {
	_, err := FromBytes(make([]byte, 33))
	if !errors.Is(err, plyerr.ErrInvalidLength) {
		t.Fatalf("FromBytes(33 bytes) error = %v, want wrapping ErrInvalidLength", err)
	}
}

// TestFromBytesRoundTrip reproduces scenario S6: converting two points
// into a buffer and re-parsing it returns the same two points, with
// byte slices equal to the corresponding windows of the buffer.
func TestFromBytesRoundTrip(t *testing.T) {
	buf := NewBuffer(2)
	p0, p1 := samplePoint(1), samplePoint(10)
	buf.Slot(0, p0)
	buf.Slot(1, p1)

	reparsed, err := FromBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if reparsed.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reparsed.Len())
	}

	for i, want := range []gaussian.Point{p0, p1} {
		got, err := reparsed.At(i)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("At(%d) mismatch (-want +got):\n%s", i, diff)
		}
		winStart := i * gaussian.PointSize
		window := buf.Bytes()[winStart : winStart+gaussian.PointSize]
		if !bytes.Equal(window, reparsed.Bytes()[winStart:winStart+gaussian.PointSize]) {
			t.Errorf("record %d byte window mismatch", i)
		}
	}
}

func TestWriterWritesPackedBytes(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	p := samplePoint(5)
	if err := w.WritePoint(p); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	if out.Len() != gaussian.PointSize {
		t.Fatalf("written length = %d, want %d", out.Len(), gaussian.PointSize)
	}

	buf, err := FromBytes(out.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	got, err := buf.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("round trip via Writer mismatch (-want +got):\n%s", diff)
	}
}

func TestAtOutOfRange(t *testing.T) {
	buf := NewBuffer(1)
	if _, err := buf.At(1); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}
