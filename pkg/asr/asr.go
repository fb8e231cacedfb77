// Package asr defines the speech-to-text backend contract used by the
// transcription worker, and the request shape passed to it.
package asr

import "context"

// Request is one transcription call: PCM carries 16kHz mono f32
// samples, Translate requests English translation instead of
// same-language transcription.
type Request struct {
	PCM       []float32
	SampleHz  int
	Translate bool
}

// Backend is the contract every ASR implementation (local whisper.cpp
// or a cloud HTTP API) satisfies. It is deliberately narrow: one
// blocking call in, one string out, so the transcription worker can
// treat local and cloud engines identically.
type Backend interface {
	Transcribe(ctx context.Context, req Request) (string, error)
	Name() string
}
