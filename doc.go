// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bring provides a bounded single-producer single-consumer ring
// buffer with wait-free operations.
//
// A Ring exchanges values between exactly one producer goroutine and
// exactly one consumer goroutine without locks, CAS, or allocation after
// construction. An optional third observer goroutine may call the
// read-only queries concurrently with both.
//
// # Quick Start
//
//	r := bring.New[Event](1024)
//
//	// Producer goroutine
//	ev := Event{ID: 42}
//	if err := r.Push(&ev); err != nil {
//	    // Ring is full - handle backpressure
//	}
//
//	// Consumer goroutine
//	ev, err := r.Pop()
//	if err == nil {
//	    process(ev)
//	}
//
// # Operations
//
// Producer side:
//
//	Push(&v)              // copy the value into the next free slot
//	Emplace(func(*T){…})  // build the element in place, no temporary
//
// Consumer side:
//
//	Pop()                 // remove and return the next element
//	PopInto(&out)         // remove into caller storage, no extra copy
//	Consume(func(T){…})   // process the element without handing it out
//
// Queries, safe from any goroutine:
//
//	IsEmpty(), IsFull()   // independent single-shot snapshots
//	State()               // one consistent {Empty, Full} snapshot
//
// All operations are non-blocking and wait-free: they complete in a
// bounded number of steps regardless of the other goroutine's progress
// and return ErrWouldBlock when the ring is full (producer side) or
// empty (consumer side).
//
// # Capacity
//
// Capacity must be a power of two and greater than 1; constructors panic
// otherwise. One slot is permanently reserved so that head == tail
// unambiguously means empty, so a ring of capacity N holds at most N-1
// elements:
//
//	r := bring.New[int](4)  // holds up to 3 elements
//	r := bring.New[int](5)  // panics: not a power of two
//
// # Backpressure
//
// The ring never waits internally. Callers that need to wait wrap the
// non-blocking operations in a retry loop, typically with [iox.Backoff]:
//
//	backoff := iox.Backoff{}
//	for r.Push(&v) != nil {
//	    backoff.Wait()
//	}
//	backoff.Reset()
//
// # Memory Ordering
//
// Correctness rests on a single acquire/release protocol over two
// cursors, each with exactly one writer. The producer release-stores the
// write cursor after filling a slot; the consumer's acquire load of that
// cursor then observes the fully written element. Symmetrically, the
// consumer release-stores the read cursor after clearing a slot, which
// the producer's acquire load observes before reusing it. The cursors
// live on separate cache lines so the two sides never invalidate each
// other's line from the hot path.
//
// FIFO order is preserved: the n-th successful pop always yields the
// value from the n-th successful push.
//
// # Ring Variants
//
// Three flavors are available:
//
//	New[T](n)       - generic type-safe ring for any element type
//	NewPtr(n)       - ring of unsafe.Pointer (zero-copy ownership transfer)
//	NewIndirect(n)  - ring of uintptr (pool indices, handles)
//
// When to use Indirect (free list over a preallocated pool):
//
//	pool := make([][]byte, 1024)
//	freeList := bring.NewIndirect(1024)
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    freeList.Push(uintptr(i))
//	}
//
//	idx, err := freeList.Pop() // allocate
//	buf := pool[idx]
//	freeList.Push(idx)         // free
//
// When to use Ptr (hand off large objects without copying):
//
//	q := bring.NewPtr(1024)
//	msg := &Message{Data: payload}
//	q.Push(unsafe.Pointer(msg))
//	// ownership transferred - do not touch msg here again
//
//	p, _ := q.Pop()
//	msg := (*Message)(p)
//
// # Teardown and Transfer
//
// Drain consumes whatever is left in FIFO order, clearing each slot so
// the GC can reclaim referenced objects, and returns the count. It must
// run from a context not concurrent with any other access:
//
//	n := r.Drain(func(ev Event) { release(ev) })
//
// Move and MoveFrom transfer the storage and both cursors wholesale,
// leaving the source empty; pending elements keep their order in the
// destination. Like Drain, they require exclusive access.
//
// # Thread Safety
//
// One goroutine calls Push/Emplace, one goroutine calls
// Pop/PopInto/Consume, any goroutine calls the queries. Using more than
// one producer or more than one consumer is a contract violation with
// undefined behavior including data corruption; the multi-producer and
// multi-consumer patterns need a different algorithm, not this one.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established through atomic
// memory orderings on separate variables. Concurrent producer/consumer
// tests are therefore excluded via //go:build !race; the algorithm is
// unaffected.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering. Benchmarks use [code.hybscloud.com/spin] for CPU
// pause instructions in retry loops.
package bring
