/*
NAME
  priority_test.go

DESCRIPTION
  priority_test.go tests the visibility-priority sorter: descending
  order, stable tie-breaking (S4), and NaN-key handling.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

package priority

import (
	"math"
	"testing"

	"github.com/bastikohn/ply2splat/gaussian"
)

func pointAt(x float32) gaussian.Point {
	return gaussian.Point{Position: [3]float32{x, 0, 0}}
}

// TestSortDescending reproduces scenario S3: two splats, the one with
// higher importance is moved ahead of the other even though it came
// second in input order.
func TestSortDescending(t *testing.T) {
	pts := []gaussian.Point{pointAt(0), pointAt(1)}
	keys := []float64{1, 5}

	Sort(pts, keys)

	if pts[0].Position[0] != 1 || pts[1].Position[0] != 0 {
		t.Fatalf("expected higher-importance point first, got %v", pts)
	}
	if keys[0] != 5 || keys[1] != 1 {
		t.Fatalf("keys not permuted consistently with points: %v", keys)
	}
}

// TestSortTieBreakStable reproduces scenario S4: equal importance
// keys retain input order.
func TestSortTieBreakStable(t *testing.T) {
	pts := []gaussian.Point{pointAt(10), pointAt(20), pointAt(30)}
	keys := []float64{2, 2, 2}

	Sort(pts, keys)

	want := []float32{10, 20, 30}
	for i, p := range pts {
		if p.Position[0] != want[i] {
			t.Fatalf("tie-break reordered points: got %v, want order %v", pts, want)
		}
	}
}

// TestSortNaNKeysLast verifies that NaN importance keys are treated as
// the smallest possible value and sort to the end.
func TestSortNaNKeysLast(t *testing.T) {
	pts := []gaussian.Point{pointAt(0), pointAt(1), pointAt(2)}
	keys := []float64{math.NaN(), 5, 3}

	Sort(pts, keys)

	if pts[len(pts)-1].Position[0] != 0 {
		t.Fatalf("NaN-keyed point did not sort last: %v", pts)
	}
	if pts[0].Position[0] != 1 || pts[1].Position[0] != 2 {
		t.Fatalf("non-NaN points not ordered descending: %v", pts)
	}
}

func TestImportance(t *testing.T) {
	got := Importance([3]float32{2, 3, 4}, 0.5)
	want := 12.0
	if got != want {
		t.Fatalf("Importance = %v, want %v", got, want)
	}
}

func TestKeysParallel(t *testing.T) {
	n := 1000
	pts := make([]gaussian.Point, n)
	alphas := make([]float64, n)
	for i := range pts {
		pts[i].Scale = [3]float32{1, 1, 1}
		alphas[i] = float64(i) / float64(n)
	}

	keys := Keys(pts, alphas, 4)
	for i, k := range keys {
		if k != alphas[i] {
			t.Fatalf("Keys[%d] = %v, want %v", i, k, alphas[i])
		}
	}
}
