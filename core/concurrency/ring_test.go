// File: core/concurrency/ring_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "testing"

func TestRingBufferDrain(t *testing.T) {
	r := NewConcurrentRingBuffer[int](32)

	r.Push(-1)
	r.Push(1)

	tmp := make([]int, 32)
	n := r.PopAll(tmp)
	if n != 2 {
		t.Fatalf("PopAll count: got %d, want 2", n)
	}
	if tmp[0] != -1 || tmp[1] != 1 {
		t.Fatalf("PopAll order: got [%d %d], want [-1 1]", tmp[0], tmp[1])
	}
}

func TestRingBufferOverflowKeepsLatest(t *testing.T) {
	r := NewConcurrentRingBuffer[int](32)

	for j := 0; j < 507; j++ {
		r.Push(3 + j)
	}

	tmp := make([]int, 32)
	n := r.PopAll(tmp)
	if n != 32 {
		t.Fatalf("PopAll count after overflow: got %d, want 32", n)
	}
	for i := 0; i < n; i++ {
		want := 507 + 3 - 32 + i
		if tmp[i] != want {
			t.Fatalf("PopAll[%d]: got %d, want %d", i, tmp[i], want)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("ring must be empty after drain, len=%d", r.Len())
	}
}

func TestRingBufferCapacityValidation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("non-power-of-two capacity must panic")
		}
	}()
	NewConcurrentRingBuffer[int](48)
}
