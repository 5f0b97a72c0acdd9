// Package hotkey owns the process-wide key binding and the OS-level grab
// loop that turns physical key transitions into orchestrator events.
package hotkey

import (
	"sync/atomic"

	"github.com/victor141516/espoquen/internal/domain"
)

// Binding holds the currently bound key. Exactly one key is bound at any
// time. Writes are fire-and-forget; reads never block. A new value takes
// effect the next time a reader re-arms, not mid-gesture.
type Binding struct {
	key atomic.Value // domain.Key
}

// NewBinding creates a binding initialized to the given key.
func NewBinding(key domain.Key) *Binding {
	b := &Binding{}
	b.key.Store(key)
	return b
}

// Set rebinds the hotkey.
func (b *Binding) Set(key domain.Key) {
	b.key.Store(key)
}

// Current returns the bound key.
func (b *Binding) Current() domain.Key {
	return b.key.Load().(domain.Key)
}
