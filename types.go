// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bring

import "unsafe"

// Buffer is the combined producer-consumer-observer interface for a
// bounded FIFO ring.
//
// All operations are non-blocking and wait-free. Push-family and
// pop-family operations return ErrWouldBlock when they cannot proceed
// (ring full or empty).
//
// The interface intentionally excludes a length query: an accurate count
// requires reading both cursors, and the two independent loads cannot be
// made atomic without a synchronization point on the hot path. Track
// counts in application logic when needed; State covers the empty/full
// questions consistently.
type Buffer[T any] interface {
	Producer[T]
	Consumer[T]
	Observer
	Cap() int
}

// Producer is the interface for the enqueueing half of a ring.
//
// Exactly one goroutine may use it. Pipeline stages that only feed a ring
// should depend on Producer rather than the full Buffer.
type Producer[T any] interface {
	// Push copies *elem into the ring (non-blocking).
	// Returns nil on success, ErrWouldBlock if the ring is full.
	Push(elem *T) error

	// Emplace builds the element in place in the ring's own storage,
	// avoiding an intermediate temporary.
	// Returns nil on success, ErrWouldBlock if the ring is full; the
	// construct callback is only invoked on success.
	Emplace(construct func(*T)) error
}

// Consumer is the interface for the dequeueing half of a ring.
//
// Exactly one goroutine may use it. Elements come out in FIFO order: the
// n-th successful pop yields the value of the n-th successful push.
type Consumer[T any] interface {
	// Pop removes and returns an element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the ring is empty.
	Pop() (T, error)

	// PopInto removes an element into *out (non-blocking), avoiding the
	// return-value copy of Pop for large element types.
	// Returns ErrWouldBlock if the ring is empty.
	PopInto(out *T) error

	// Consume invokes the processor with the next element and removes it
	// (non-blocking). The processor is only invoked on success.
	// Returns ErrWouldBlock if the ring is empty.
	Consume(processor func(T)) error
}

// BufferPtr is the combined interface for unsafe.Pointer rings.
//
// BufferPtr passes pointers without copying the pointed-to object,
// enabling zero-copy ownership transfer: the producer enqueues a pointer
// and must not touch the object afterwards.
type BufferPtr interface {
	// Push stores elem (non-blocking).
	// Returns ErrWouldBlock if the ring is full.
	Push(elem unsafe.Pointer) error

	// Pop removes and returns a pointer (non-blocking).
	// Returns (nil, ErrWouldBlock) if the ring is empty.
	Pop() (unsafe.Pointer, error)

	Observer
	Cap() int
}

// BufferIndirect is the combined interface for uintptr rings, carrying
// pool indices or handles instead of full objects.
type BufferIndirect interface {
	// Push stores elem (non-blocking).
	// Returns ErrWouldBlock if the ring is full.
	Push(elem uintptr) error

	// Pop removes and returns a value (non-blocking).
	// Returns (0, ErrWouldBlock) if the ring is empty.
	Pop() (uintptr, error)

	Observer
	Cap() int
}

// Observer is the read-only query surface of a ring. Unlike the producer
// and consumer halves it is safe from any goroutine, including a third
// observer thread running alongside both.
type Observer interface {
	// IsEmpty reports emptiness as an independent single-shot snapshot.
	IsEmpty() bool

	// IsFull reports fullness as an independent single-shot snapshot.
	// Two back-to-back queries may straddle a concurrent mutation.
	IsFull() bool

	// State reports emptiness and fullness from one consistent snapshot;
	// the two can never both be true.
	State() State
}
