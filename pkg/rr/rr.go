package rr

import "sync/atomic"

// RR hands out indexes in round-robin order. The zero value is ready to use
// and safe for concurrent callers.
type RR struct{ n atomic.Uint64 }

func (r *RR) Next(mod int) int {
	if mod <= 1 {
		return 0
	}
	x := r.n.Add(1)
	return int((x - 1) % uint64(mod))
}

// Pick returns the next element of items, or the zero value when items is empty.
func Pick[T any](r *RR, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.Next(len(items))]
}
