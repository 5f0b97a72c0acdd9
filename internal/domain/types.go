package domain

// Phase models the dictation lifecycle as observed through the status sink.
type Phase string

const (
	PhaseLoadingModel Phase = "loading_model"
	PhaseReady        Phase = "ready"
	PhaseRecording    Phase = "recording"
	PhaseTranscribing Phase = "transcribing"
	PhaseError        Phase = "error"
)

// ErrorCode identifies which collaborator a non-fatal failure came from.
type ErrorCode string

const (
	ErrorCodeDevice ErrorCode = "device"
	ErrorCodeEngine ErrorCode = "engine"
	ErrorCodeInject ErrorCode = "inject"
	ErrorCodeRules  ErrorCode = "rules"
)

// StatusEvent is the immutable value broadcast to the status sink on every
// state transition. Code is set only when Phase is PhaseError.
type StatusEvent struct {
	Phase   Phase
	Code    ErrorCode
	Message string
}

// Key names a physical key in binding-file notation ("F6", "F12", ...).
type Key string

const (
	KeyF1  Key = "F1"
	KeyF2  Key = "F2"
	KeyF3  Key = "F3"
	KeyF4  Key = "F4"
	KeyF5  Key = "F5"
	KeyF6  Key = "F6"
	KeyF7  Key = "F7"
	KeyF8  Key = "F8"
	KeyF9  Key = "F9"
	KeyF10 Key = "F10"
	KeyF11 Key = "F11"
	KeyF12 Key = "F12"
)

// DefaultKey is the binding used until the user picks another one.
const DefaultKey = KeyF6

// Edge is a discrete key-state transition reported by the capture mechanism.
type Edge int

const (
	EdgeDown Edge = iota
	EdgeUp
)

// KeyEvent is one physical key transition forwarded to the orchestrator.
type KeyEvent struct {
	Key  Key
	Edge Edge
}

// Clip is a finished recording: ownership moves to the transcription engine
// and the samples are never mutated afterwards.
type Clip struct {
	Samples    []float32
	SampleRate int
}

// Empty reports whether the clip carries no audio.
func (c Clip) Empty() bool {
	return len(c.Samples) == 0
}
