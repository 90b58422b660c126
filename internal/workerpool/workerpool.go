/*
NAME
  workerpool.go

DESCRIPTION
  workerpool.go provides a fixed-size goroutine fan-out helper used to
  parallelize independent per-record work over an index range.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

// Package workerpool provides a small helper for partitioning
// independent work over a contiguous index range across a fixed
// number of goroutines.
package workerpool

import (
	"runtime"
	"sync"
)

// Map splits the index range [0, n) into up to workers contiguous
// partitions and calls fn(lo, hi) for each partition concurrently,
// blocking until every partition has completed. If workers is <= 0,
// runtime.GOMAXPROCS(0) is used. fn must not panic; partitions never
// overlap, so fn implementations may write to disjoint slices without
// additional synchronization.
func Map(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
