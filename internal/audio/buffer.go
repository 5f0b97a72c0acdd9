// Package audio captures microphone PCM through PortAudio into an
// append-only in-memory buffer.
package audio

import "sync"

// Buffer accumulates PCM samples pushed by the audio callback thread.
// Appends preserve arrival order. Take seals the buffer and hands ownership
// of the samples to the caller; appends after Take are dropped.
type Buffer struct {
	mu      sync.Mutex
	samples []float32
	sealed  bool
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append copies one callback block into the buffer.
func (b *Buffer) Append(frames []float32) {
	if len(frames) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sealed {
		return
	}
	b.samples = append(b.samples, frames...)
}

// Take seals the buffer and returns the accumulated samples. The buffer
// accepts no writes afterwards, so the returned slice is safe to move
// across goroutines without aliasing.
func (b *Buffer) Take() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sealed = true
	samples := b.samples
	b.samples = nil
	return samples
}

// Len returns the number of accumulated samples.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}
