// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bring

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// RingIndirect is a bounded SPSC circular buffer for uintptr values.
// Useful for passing pool indices or handles instead of full objects,
// e.g. a free list over a preallocated buffer pool.
//
// Same access contract and cursor protocol as Ring.
type RingIndirect struct {
	_      pad
	head   atomix.Uint64 // Write cursor, producer-owned
	_      pad
	tail   atomix.Uint64 // Read cursor, consumer-owned
	_      pad
	buffer []uintptr
	mask   uint64
}

// NewIndirect creates a RingIndirect with the given capacity.
// Capacity must be a power of two and > 1; usable capacity is capacity-1.
// Panics on an invalid capacity.
func NewIndirect(capacity int) *RingIndirect {
	if capacity < 2 {
		panic("bring: capacity must be >= 2")
	}
	if capacity&(capacity-1) != 0 {
		panic("bring: capacity must be a power of two")
	}

	n := uint64(capacity)
	return &RingIndirect{
		buffer: make([]uintptr, n),
		mask:   n - 1,
	}
}

// Push stores elem at the write cursor (producer only).
// Returns ErrWouldBlock if the ring is full.
func (q *RingIndirect) Push(elem uintptr) error {
	head := q.head.LoadRelaxed()
	next := (head + 1) & q.mask
	if next == q.tail.LoadAcquire() {
		return ErrWouldBlock
	}

	// Bounds check eliminated: the cursor is already reduced to [0, cap).
	// Equivalent to q.buffer[head] = elem
	*(*uintptr)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(head)*ptrSize)) = elem
	q.head.StoreRelease(next)
	return nil
}

// Pop removes and returns the value at the read cursor (consumer only).
// Returns (0, ErrWouldBlock) if the ring is empty.
func (q *RingIndirect) Pop() (uintptr, error) {
	tail := q.tail.LoadRelaxed()
	if tail == q.head.LoadAcquire() {
		return 0, ErrWouldBlock
	}

	elem := *(*uintptr)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(tail)*ptrSize))
	q.tail.StoreRelease((tail + 1) & q.mask)
	return elem, nil
}

// PopInto removes the value at the read cursor into *out (consumer only).
// Returns ErrWouldBlock without touching *out if the ring is empty.
func (q *RingIndirect) PopInto(out *uintptr) error {
	elem, err := q.Pop()
	if err != nil {
		return err
	}
	*out = elem
	return nil
}

// Consume invokes processor with the value at the read cursor, then
// advances (consumer only). The read cursor is published only after
// processor returns.
// Returns ErrWouldBlock without invoking processor if the ring is empty.
func (q *RingIndirect) Consume(processor func(uintptr)) error {
	tail := q.tail.LoadRelaxed()
	if tail == q.head.LoadAcquire() {
		return ErrWouldBlock
	}

	elem := *(*uintptr)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(tail)*ptrSize))
	processor(elem)
	q.tail.StoreRelease((tail + 1) & q.mask)
	return nil
}

// IsEmpty reports whether the ring was empty at some instant during the call.
func (q *RingIndirect) IsEmpty() bool {
	tail := q.tail.LoadRelaxed()
	return tail == q.head.LoadAcquire()
}

// IsFull reports whether the ring was full at some instant during the call.
func (q *RingIndirect) IsFull() bool {
	head := q.head.LoadRelaxed()
	return (head+1)&q.mask == q.tail.LoadAcquire()
}

// State reports emptiness and fullness from a single pair of cursor loads.
// Safe from any goroutine.
func (q *RingIndirect) State() State {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	return State{
		Empty: head == tail,
		Full:  (head+1)&q.mask == tail,
	}
}

// Cap returns the slot count; usable capacity is Cap()-1.
func (q *RingIndirect) Cap() int {
	return int(q.mask + 1)
}

// Drain consumes every remaining value in FIFO order, invoking processor
// (if non-nil) for each, and returns the number drained. Teardown only;
// must not run concurrently with any other access.
func (q *RingIndirect) Drain(processor func(uintptr)) int {
	n := 0
	for {
		elem, err := q.Pop()
		if err != nil {
			return n
		}
		if processor != nil {
			processor(elem)
		}
		n++
	}
}
