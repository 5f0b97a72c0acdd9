package usecase

import (
	"github.com/victor141516/espoquen/internal/domain"
	"github.com/victor141516/espoquen/internal/ports"
)

// session is one recording-to-transcription cycle. The id is a fencing
// token: completions carrying any other id are discarded.
type session struct {
	id  uint64
	key domain.Key // toggle key snapshotted at creation; rebinds do not touch it
	rec ports.Recording
}

// event is the single serialized input type of the orchestrator loop. Key
// edges, engine completions and shutdown all funnel through one channel so
// the state machine stays linear no matter how many threads produce them.
type event interface{ isEvent() }

type keyEvent struct {
	key domain.KeyEvent
}

type completionEvent struct {
	sessionID uint64
	text      string
	err       error
}

func (keyEvent) isEvent()        {}
func (completionEvent) isEvent() {}
