/*
NAME
  priority.go

DESCRIPTION
  priority.go implements the visibility-priority reorder of a Point
  array: importance is volume times opacity, computed in parallel over
  the pre-quantization record data, and the array is stably sorted by
  descending importance with ties broken by original input order.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

// Package priority implements the stable, descending-importance
// reorder of a converted splat array.
package priority

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/bastikohn/ply2splat/gaussian"
	"github.com/bastikohn/ply2splat/internal/workerpool"
)

// Importance returns the visibility-priority key for a record:
// (scale_x * scale_y * scale_z) * alpha, where scale is the linear
// (post-exp) scale and alpha is the float opacity before 8-bit
// quantization.
func Importance(scale [3]float32, alpha float64) float64 {
	volume := float64(scale[0]) * float64(scale[1]) * float64(scale[2])
	return volume * alpha
}

// Keys computes the importance key for every point in pts given the
// parallel pre-quantization alphas, using a worker-pool fan-out over
// Importance. len(alphas) must equal len(pts).
func Keys(pts []gaussian.Point, alphas []float64, workers int) []float64 {
	keys := make([]float64, len(pts))
	workerpool.Map(len(pts), workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			keys[i] = Importance(pts[i].Scale, alphas[i])
		}
	})
	return keys
}

// Sort reorders pts in place (together with its parallel keys slice)
// by descending importance key, breaking ties by ascending original
// index so the sort is observably stable. NaN keys sort to the end,
// as if they were the smallest possible value.
func Sort(pts []gaussian.Point, keys []float64) {
	if len(pts) != len(keys) {
		panic("priority: pts and keys length mismatch")
	}
	if len(pts) < 2 {
		return
	}

	// Remap NaN keys to -Inf so they compare as the smallest possible
	// value and sort to the end of a descending sort, without
	// requiring NaN-aware comparisons on every element pair.
	if floats.HasNaN(keys) {
		for i, k := range keys {
			if math.IsNaN(k) {
				keys[i] = math.Inf(-1)
			}
		}
	}

	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}

	sort.Sort(&byImportance{idx: idx, keys: keys})

	permuted := make([]gaussian.Point, len(pts))
	for newPos, oldPos := range idx {
		permuted[newPos] = pts[oldPos]
	}
	copy(pts, permuted)

	sortedKeys := make([]float64, len(keys))
	for newPos, oldPos := range idx {
		sortedKeys[newPos] = keys[oldPos]
	}
	copy(keys, sortedKeys)
}

// byImportance sorts a permutation of indices by descending key with
// ascending-index tie-break, so the result is deterministic even if
// the underlying sort.Sort algorithm is not itself stable.
type byImportance struct {
	idx  []int
	keys []float64
}

func (b *byImportance) Len() int { return len(b.idx) }

func (b *byImportance) Less(i, j int) bool {
	ki, kj := b.keys[b.idx[i]], b.keys[b.idx[j]]
	if ki != kj {
		return ki > kj
	}
	return b.idx[i] < b.idx[j]
}

func (b *byImportance) Swap(i, j int) {
	b.idx[i], b.idx[j] = b.idx[j], b.idx[i]
}
