// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bring

// arena owns the slot storage of a ring. It is allocated once at
// construction and never grows. The arena itself has no notion of which
// slots hold live elements; occupancy is derived from the cursor pair by
// the ring, and callers hand in indices already reduced modulo capacity.
//
// This is the unsafe boundary of the package in the lifecycle sense:
// construct and take are the only places an element enters or leaves a
// slot, and the cursor protocol is what makes them race-free.
type arena[T any] struct {
	slots []T
}

func newArena[T any](n uint64) arena[T] {
	return arena[T]{slots: make([]T, n)}
}

// at returns the address of slot i. No bounds discipline beyond the mask
// the caller already applied.
func (a *arena[T]) at(i uint64) *T {
	return &a.slots[i]
}

// take moves the element out of slot i and clears the slot, so the GC can
// reclaim anything the element referenced while it waits to be reused.
func (a *arena[T]) take(i uint64) T {
	elem := a.slots[i]
	var zero T
	a.slots[i] = zero
	return elem
}
