package asr

import "errors"

var (
	// ErrEmptyAudio is returned when Transcribe is called with no samples.
	ErrEmptyAudio = errors.New("asr: empty audio buffer")
	// ErrBackendUnavailable signals a local engine failed to initialize
	// (missing model file, CGO bindings not usable on this build).
	ErrBackendUnavailable = errors.New("asr: backend unavailable")
)
