// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bring

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// RingPtr is a bounded SPSC circular buffer for unsafe.Pointer values.
// Useful for zero-copy ownership transfer between goroutines: the producer
// enqueues a pointer and must not touch the object afterwards; the consumer
// receives the same pointer.
//
// Same access contract and cursor protocol as Ring.
type RingPtr struct {
	_      pad
	head   atomix.Uint64 // Write cursor, producer-owned
	_      pad
	tail   atomix.Uint64 // Read cursor, consumer-owned
	_      pad
	buffer []unsafe.Pointer
	mask   uint64
}

// NewPtr creates a RingPtr with the given capacity.
// Capacity must be a power of two and > 1; usable capacity is capacity-1.
// Panics on an invalid capacity.
func NewPtr(capacity int) *RingPtr {
	if capacity < 2 {
		panic("bring: capacity must be >= 2")
	}
	if capacity&(capacity-1) != 0 {
		panic("bring: capacity must be a power of two")
	}

	n := uint64(capacity)
	return &RingPtr{
		buffer: make([]unsafe.Pointer, n),
		mask:   n - 1,
	}
}

// Push stores elem at the write cursor (producer only).
// Returns ErrWouldBlock if the ring is full.
func (q *RingPtr) Push(elem unsafe.Pointer) error {
	head := q.head.LoadRelaxed()
	next := (head + 1) & q.mask
	if next == q.tail.LoadAcquire() {
		return ErrWouldBlock
	}

	// Pointer arithmetic avoids slice bounds checking in the hot path;
	// the cursor is already reduced to [0, cap).
	// Equivalent to q.buffer[head] = elem
	*(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(head)*ptrSize)) = elem
	q.head.StoreRelease(next)
	return nil
}

// Pop removes and returns the pointer at the read cursor (consumer only).
// The slot is cleared so the ring does not pin the object for the GC.
// Returns (nil, ErrWouldBlock) if the ring is empty.
func (q *RingPtr) Pop() (unsafe.Pointer, error) {
	tail := q.tail.LoadRelaxed()
	if tail == q.head.LoadAcquire() {
		return nil, ErrWouldBlock
	}

	slot := (*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(tail)*ptrSize))
	elem := *slot
	*slot = nil
	q.tail.StoreRelease((tail + 1) & q.mask)
	return elem, nil
}

// PopInto removes the pointer at the read cursor into *out (consumer only).
// Returns ErrWouldBlock without touching *out if the ring is empty.
func (q *RingPtr) PopInto(out *unsafe.Pointer) error {
	elem, err := q.Pop()
	if err != nil {
		return err
	}
	*out = elem
	return nil
}

// Consume invokes processor with the pointer at the read cursor, then
// clears the slot and advances (consumer only). The read cursor is
// published only after processor returns.
// Returns ErrWouldBlock without invoking processor if the ring is empty.
func (q *RingPtr) Consume(processor func(unsafe.Pointer)) error {
	tail := q.tail.LoadRelaxed()
	if tail == q.head.LoadAcquire() {
		return ErrWouldBlock
	}

	slot := (*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(tail)*ptrSize))
	processor(*slot)
	*slot = nil
	q.tail.StoreRelease((tail + 1) & q.mask)
	return nil
}

// IsEmpty reports whether the ring was empty at some instant during the call.
func (q *RingPtr) IsEmpty() bool {
	tail := q.tail.LoadRelaxed()
	return tail == q.head.LoadAcquire()
}

// IsFull reports whether the ring was full at some instant during the call.
func (q *RingPtr) IsFull() bool {
	head := q.head.LoadRelaxed()
	return (head+1)&q.mask == q.tail.LoadAcquire()
}

// State reports emptiness and fullness from a single pair of cursor loads.
// Safe from any goroutine.
func (q *RingPtr) State() State {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	return State{
		Empty: head == tail,
		Full:  (head+1)&q.mask == tail,
	}
}

// Cap returns the slot count; usable capacity is Cap()-1.
func (q *RingPtr) Cap() int {
	return int(q.mask + 1)
}

// Drain consumes every remaining pointer in FIFO order, invoking processor
// (if non-nil) for each, and returns the number drained. Teardown only;
// must not run concurrently with any other access.
func (q *RingPtr) Drain(processor func(unsafe.Pointer)) int {
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
