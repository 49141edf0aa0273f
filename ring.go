// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bring

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// Ring is a bounded single-producer single-consumer circular buffer.
//
// Exactly one goroutine may call the producer operations (Push, Emplace)
// and exactly one goroutine may call the consumer operations (Pop, PopInto,
// Consume). Any goroutine may call the read-only queries (IsEmpty, IsFull,
// State, Cap). Violating the access pattern causes undefined behavior.
//
// Each cursor has a single writer, so no CAS is needed anywhere: every
// operation is wait-free. The producer publishes a slot by a release store
// of head; the consumer's acquire load of head then observes the fully
// written element. Symmetrically the consumer's release store of tail frees
// a slot for reuse.
//
// Cursors stay in [0, cap) and one slot is permanently reserved, so
// head == tail unambiguously means empty; usable capacity is Cap()-1.
//
// Memory: O(capacity) with no per-slot overhead
type Ring[T any] struct {
	_       pad
	head    atomix.Uint64 // Write cursor, producer-owned
	_       pad
	tail    atomix.Uint64 // Read cursor, consumer-owned
	_       pad
	storage arena[T]
	mask    uint64
}

// New creates a Ring with the given capacity.
// Capacity must be a power of two and > 1; usable capacity is capacity-1.
// Panics on an invalid capacity.
func New[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		panic("bring: capacity must be >= 2")
	}
	if capacity&(capacity-1) != 0 {
		panic("bring: capacity must be a power of two")
	}

	n := uint64(capacity)
	return &Ring[T]{
		storage: newArena[T](n),
		mask:    n - 1,
	}
}

// Push copies *elem into the slot at the write cursor (producer only).
// Returns ErrWouldBlock without side effects if the ring is full.
func (r *Ring[T]) Push(elem *T) error {
	head := r.head.LoadRelaxed()
	next := (head + 1) & r.mask
	if next == r.tail.LoadAcquire() {
		return ErrWouldBlock
	}

	*r.storage.at(head) = *elem
	r.head.StoreRelease(next)
	return nil
}

// Emplace builds the element directly in the slot at the write cursor
// (producer only), avoiding an intermediate temporary. The construct
// callback receives the slot address and must fully initialize it.
// Returns ErrWouldBlock without invoking construct if the ring is full.
//
// If construct panics, the write cursor is never published, so the
// consumer cannot observe a partially built element.
func (r *Ring[T]) Emplace(construct func(*T)) error {
	head := r.head.LoadRelaxed()
	next := (head + 1) & r.mask
	if next == r.tail.LoadAcquire() {
		return ErrWouldBlock
	}

	construct(r.storage.at(head))
	r.head.StoreRelease(next)
	return nil
}

// Pop removes and returns the element at the read cursor (consumer only).
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (r *Ring[T]) Pop() (T, error) {
	tail := r.tail.LoadRelaxed()
	if tail == r.head.LoadAcquire() {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := r.storage.take(tail)
	r.tail.StoreRelease((tail + 1) & r.mask)
	return elem, nil
}

// PopInto removes the element at the read cursor into *out (consumer only),
// avoiding the extra return-value copy of Pop for large element types.
// Returns ErrWouldBlock without touching *out if the ring is empty.
func (r *Ring[T]) PopInto(out *T) error {
	tail := r.tail.LoadRelaxed()
	if tail == r.head.LoadAcquire() {
		return ErrWouldBlock
	}

	*out = r.storage.take(tail)
	r.tail.StoreRelease((tail + 1) & r.mask)
	return nil
}

// Consume invokes processor with the element at the read cursor, then
// clears the slot and advances (consumer only). Returns ErrWouldBlock
// without invoking processor if the ring is empty.
//
// The read cursor is published only after processor returns. A panicking
// processor therefore leaves the element logically queued: it will be
// delivered again on the next consumer call. Processors are expected not
// to panic; no recovery is attempted.
func (r *Ring[T]) Consume(processor func(T)) error {
	tail := r.tail.LoadRelaxed()
	if tail == r.head.LoadAcquire() {
		return ErrWouldBlock
	}

	slot := r.storage.at(tail)
	processor(*slot)
	var zero T
	*slot = zero
	r.tail.StoreRelease((tail + 1) & r.mask)
	return nil
}

// IsEmpty reports whether the ring was empty at some instant during the
// call. The result is a single-shot snapshot; a concurrent producer may
// have pushed by the time the caller inspects it.
func (r *Ring[T]) IsEmpty() bool {
	tail := r.tail.LoadRelaxed()
	return tail == r.head.LoadAcquire()
}

// IsFull reports whether the ring was full at some instant during the
// call. Like IsEmpty, this is an independent snapshot: IsEmpty followed by
// IsFull may straddle a concurrent mutation. Use State when the two
// answers must come from the same instant.
func (r *Ring[T]) IsFull() bool {
	head := r.head.LoadRelaxed()
	return (head+1)&r.mask == r.tail.LoadAcquire()
}

// State reports emptiness and fullness computed from a single pair of
// cursor loads. The two fields are mutually consistent: they can never
// both be true. Safe from any goroutine, including a third observer.
func (r *Ring[T]) State() State {
	head := r.head.LoadAcquire()
	tail := r.tail.LoadAcquire()
	return State{
		Empty: head == tail,
		Full:  (head+1)&r.mask == tail,
	}
}

// Cap returns the slot count. Usable capacity is Cap()-1: one slot is
// reserved so that head == tail always means empty.
func (r *Ring[T]) Cap() int {
	return int(r.mask + 1)
}

// Drain consumes every remaining element in FIFO order, invoking processor
// (if non-nil) for each, and returns the number drained. Slots are cleared
// as they go, releasing references to the GC.
//
// Drain is for teardown and must not run concurrently with any other
// access to the ring.
func (r *Ring[T]) Drain(processor func(T)) int {
	n := 0
	for {
		tail := r.tail.LoadRelaxed()
		if tail == r.head.LoadAcquire() {
			return n
		}
		elem := r.storage.take(tail)
		if processor != nil {
			processor(elem)
		}
		r.tail.StoreRelease((tail + 1) & r.mask)
		n++
	}
}

// Move transfers the arena and both cursor values to a fresh ring and
// resets r to the empty, storage-less state. Pending elements move with
// the arena, preserving their order; draining r afterwards is a no-op.
// A moved-from ring must not be pushed to or popped from again unless
// another ring is moved into it via MoveFrom.
//
// Move must not run concurrently with any other access to r.
func (r *Ring[T]) Move() *Ring[T] {
	dst := &Ring[T]{
		storage: r.storage,
		mask:    r.mask,
	}
	dst.head.StoreRelaxed(r.head.LoadRelaxed())
	dst.tail.StoreRelaxed(r.tail.LoadRelaxed())

	r.storage = arena[T]{}
	r.head.StoreRelaxed(0)
	r.tail.StoreRelaxed(0)
	return dst
}

// MoveFrom drains r's own remaining elements, then takes ownership of
// src's arena and cursor values, leaving src empty and storage-less.
// Moving a ring into itself is a no-op.
//
// MoveFrom must not run concurrently with any access to either ring.
func (r *Ring[T]) MoveFrom(src *Ring[T]) {
	if r == src {
		return
	}

	r.Drain(nil)

	r.storage = src.storage
	r.mask = src.mask
	r.head.StoreRelaxed(src.head.LoadRelaxed())
	r.tail.StoreRelaxed(src.tail.LoadRelaxed())

	src.storage = arena[T]{}
	src.head.StoreRelaxed(0)
	src.tail.StoreRelaxed(0)
}

// State is a mutually consistent snapshot of the empty and full
// predicates, as returned by the State methods. Capacity > 1 guarantees
// Empty and Full are never both true in the same snapshot.
type State struct {
	Empty bool
	Full  bool
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [64]byte
