// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bring_test

import (
	"errors"
	"testing"
	"unsafe"

	"code.hybscloud.com/bring"
)

// =============================================================================
// Drain
// =============================================================================

// TestDrainCounts tests that teardown drains exactly the pending elements,
// in FIFO order, with no double delivery.
func TestDrainCounts(t *testing.T) {
	r := bring.New[int](16)

	const pending = 10
	for i := range pending {
		v := i
		if err := r.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	var drained []int
	n := r.Drain(func(v int) { drained = append(drained, v) })
	if n != pending {
		t.Fatalf("Drain count: got %d, want %d", n, pending)
	}
	for i, v := range drained {
		if v != i {
			t.Fatalf("Drain order: index %d got %d, want %d", i, v, i)
		}
	}

	if !r.IsEmpty() {
		t.Fatalf("after Drain: IsEmpty got false, want true")
	}

	// Second drain sees nothing
	if n := r.Drain(func(int) { t.Errorf("processor invoked on drained ring") }); n != 0 {
		t.Fatalf("second Drain: got %d, want 0", n)
	}
}

// TestDrainNilProcessor tests discarding teardown.
func TestDrainNilProcessor(t *testing.T) {
	r := bring.New[string](8)
	for _, s := range []string{"a", "b", "c"} {
		if err := r.Push(&s); err != nil {
			t.Fatalf("Push(%q): %v", s, err)
		}
	}

	if n := r.Drain(nil); n != 3 {
		t.Fatalf("Drain: got %d, want 3", n)
	}
	if _, err := r.Pop(); !errors.Is(err, bring.ErrWouldBlock) {
		t.Fatalf("Pop after Drain: got %v, want ErrWouldBlock", err)
	}
}

// TestDrainAfterWrap tests draining a ring whose cursors have wrapped.
func TestDrainAfterWrap(t *testing.T) {
	r := bring.New[int](4)

	// Advance the cursors past the wrap point
	for i := range 5 {
		v := i
		if err := r.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
		if _, err := r.Pop(); err != nil {
			t.Fatalf("Pop: %v", err)
		}
	}

	for i := range 3 {
		v := 100 + i
		if err := r.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	var drained []int
	if n := r.Drain(func(v int) { drained = append(drained, v) }); n != 3 {
		t.Fatalf("Drain: got %d, want 3", n)
	}
	for i, v := range drained {
		if v != 100+i {
			t.Fatalf("Drain order: index %d got %d, want %d", i, v, 100+i)
		}
	}
}

// TestDrainVariants tests teardown on the pointer and indirect flavors.
func TestDrainVariants(t *testing.T) {
	p := bring.NewPtr(8)
	vals := [3]int{1, 2, 3}
	for i := range vals {
		if err := p.Push(unsafe.Pointer(&vals[i])); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}
	sum := 0
	if n := p.Drain(func(ptr unsafe.Pointer) { sum += *(*int)(ptr) }); n != 3 {
		t.Fatalf("RingPtr Drain: got %d, want 3", n)
	}
	if sum != 6 {
		t.Fatalf("RingPtr Drain sum: got %d, want 6", sum)
	}

	q := bring.NewIndirect(8)
	for i := range 4 {
		if err := q.Push(uintptr(i)); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}
	if n := q.Drain(nil); n != 4 {
		t.Fatalf("RingIndirect Drain: got %d, want 4", n)
	}
	if !q.IsEmpty() {
		t.Fatalf("RingIndirect after Drain: IsEmpty got false, want true")
	}
}

// =============================================================================
// Move Transfer
// =============================================================================

// TestMove tests that Move transfers pending elements in order and leaves
// the source empty with nothing left to drain.
func TestMove(t *testing.T) {
	src := bring.New[int](8)
	for i := range 5 {
		v := i
		if err := src.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	dst := src.Move()

	if dst.Cap() != 8 {
		t.Fatalf("dst Cap: got %d, want 8", dst.Cap())
	}
	for i := range 5 {
		got, err := dst.Pop()
		if err != nil {
			t.Fatalf("dst Pop(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("dst Pop(%d): got %d, want %d", i, got, i)
		}
	}

	// Moved-from ring is empty; its teardown performs no element work
	if !src.IsEmpty() {
		t.Fatalf("moved-from ring: IsEmpty got false, want true")
	}
	if n := src.Drain(func(int) { t.Errorf("processor invoked on moved-from ring") }); n != 0 {
		t.Fatalf("moved-from Drain: got %d, want 0", n)
	}
}

// TestMoveWrapped tests moving a ring whose cursors have wrapped.
func TestMoveWrapped(t *testing.T) {
	src := bring.New[int](4)
	for i := range 6 {
		v := i
		if err := src.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
		if _, err := src.Pop(); err != nil {
			t.Fatalf("Pop: %v", err)
		}
	}
	for i := range 3 {
		v := 10 + i
		if err := src.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	dst := src.Move()
	for i := range 3 {
		got, err := dst.Pop()
		if err != nil {
			t.Fatalf("dst Pop(%d): %v", i, err)
		}
		if got != 10+i {
			t.Fatalf("dst Pop(%d): got %d, want %d", i, got, 10+i)
		}
	}
}

// TestMoveFrom tests move assignment: the destination drains its own
// elements first, then adopts the source's storage and cursors.
func TestMoveFrom(t *testing.T) {
	dst := bring.New[int](8)
	for i := range 3 {
		v := 900 + i
		if err := dst.Push(&v); err != nil {
			t.Fatalf("dst Push(%d): %v", i, err)
		}
	}

	src := bring.New[int](16)
	for i := range 4 {
		v := i
		if err := src.Push(&v); err != nil {
			t.Fatalf("src Push(%d): %v", i, err)
		}
	}

	dst.MoveFrom(src)

	if dst.Cap() != 16 {
		t.Fatalf("dst Cap after MoveFrom: got %d, want 16", dst.Cap())
	}
	for i := range 4 {
		got, err := dst.Pop()
		if err != nil {
			t.Fatalf("dst Pop(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("dst Pop(%d): got %d, want %d", i, got, i)
		}
	}
	if _, err := dst.Pop(); !errors.Is(err, bring.ErrWouldBlock) {
		t.Fatalf("dst Pop past transferred elements: got %v, want ErrWouldBlock", err)
	}

	if !src.IsEmpty() {
		t.Fatalf("moved-from ring: IsEmpty got false, want true")
	}
	if n := src.Drain(nil); n != 0 {
		t.Fatalf("moved-from Drain: got %d, want 0", n)
	}
}

// TestMoveFromSelf tests that self-move is a no-op.
func TestMoveFromSelf(t *testing.T) {
	r := bring.New[int](4)
	v := 1
	if err := r.Push(&v); err != nil {
		t.Fatalf("Push: %v", err)
	}

	r.MoveFrom(r)

	got, err := r.Pop()
	if err != nil {
		t.Fatalf("Pop after self-move: %v", err)
	}
	if got != 1 {
		t.Fatalf("Pop after self-move: got %d, want 1", got)
	}
}
