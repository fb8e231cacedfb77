package engine

import (
	"github.com/rtcaption/engine/pkg/captioning"
	"github.com/rtcaption/engine/pkg/segmenter"
)

// Config aggregates every tunable the engine needs to wire a full
// capture -> segment -> transcribe -> publish pipeline.
type Config struct {
	Segmenter segmenter.Config

	// InputLanguage is the BCP-47 hint passed to the ASR backend, or
	// "auto" to let it detect. Unrelated to OutputLanguage, which
	// controls translation.
	InputLanguage string

	// OutputLanguage is the initial value of the live output-language
	// toggle.
	OutputLanguage captioning.Language

	// Engine selects which ASR backend to construct: "local" or "cloud".
	Engine string

	// WhisperModelPath is required when Engine == "local".
	WhisperModelPath string

	// CloudProvider selects which HTTP backend Engine == "cloud" builds:
	// "openai" (multipart WAV upload) or "deepgram" (raw PCM upload).
	CloudProvider string

	// CloudAPIKey/CloudModel configure the HTTP backend when
	// Engine == "cloud".
	CloudAPIKey string
	CloudModel  string

	// CommitThreshold is how many consecutive agreeing partials a word
	// must survive before the stabilizer commits it ("stable_required").
	// A value <= 0 falls back to captioning.CommitThreshold.
	CommitThreshold int

	// AudioQueueSize/SegmentQueueSize bound the pipeline's internal
	// channels. A full audio queue drops the incoming chunk rather than
	// blocking capture; segment-queue handling is described on
	// Supervisor.segmentLoop.
	AudioQueueSize   int
	SegmentQueueSize int

	// NoOverlay disables the WebSocket broadcaster, running headless
	// with only the console sink.
	NoOverlay bool

	// OverlayAddr is the address the overlay HTTP server listens on
	// when NoOverlay is false.
	OverlayAddr string
}

// DefaultConfig returns the engine's out-of-the-box configuration.
func DefaultConfig() Config {
	return Config{
		Segmenter:        segmenter.DefaultConfig(),
		InputLanguage:    "auto",
		OutputLanguage:   captioning.LanguageAuto,
		Engine:           "local",
		CloudProvider:    "openai",
		CommitThreshold:  captioning.CommitThreshold,
		AudioQueueSize:   256,
		SegmentQueueSize: 32,
		NoOverlay:        false,
		OverlayAddr:      "127.0.0.1:8642",
	}
}
