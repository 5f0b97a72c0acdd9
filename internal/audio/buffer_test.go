package audio

import (
	"sync"
	"testing"
)

func TestBufferPreservesArrivalOrder(t *testing.T) {
	t.Parallel()

	buf := NewBuffer()
	buf.Append([]float32{1, 2})
	buf.Append([]float32{3})
	buf.Append([]float32{4, 5, 6})

	got := buf.Take()
	want := []float32{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestBufferRejectsWritesAfterTake(t *testing.T) {
	t.Parallel()

	buf := NewBuffer()
	buf.Append([]float32{1})
	_ = buf.Take()

	buf.Append([]float32{2})
	if got := buf.Take(); len(got) != 0 {
		t.Fatalf("expected sealed buffer to stay empty, got %d samples", len(got))
	}
}

func TestBufferCopiesCallbackBlock(t *testing.T) {
	t.Parallel()

	block := []float32{1, 2, 3}
	buf := NewBuffer()
	buf.Append(block)
	block[0] = 99

	if got := buf.Take(); got[0] != 1 {
		t.Fatalf("expected buffer to own its samples, got %v", got[0])
	}
}

func TestBufferConcurrentAppends(t *testing.T) {
	t.Parallel()

	buf := NewBuffer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				buf.Append([]float32{0.5})
			}
		}()
	}
	wg.Wait()

	if got := len(buf.Take()); got != 800 {
		t.Fatalf("expected 800 samples, got %d", got)
	}
}
