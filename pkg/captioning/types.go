// Package captioning wires the segmenter and ASR backend together into
// a transcription worker that emits caption events for one output
// stream.
package captioning

import "sync/atomic"

// Language is the output-language selector exposed to callers. auto
// means "transcribe in the spoken language, no translation"; any other
// value requests translation into that language, mirroring the
// transcription/translation endpoint split ASR backends expose.
type Language uint32

const (
	LanguageAuto Language = iota
	LanguageEnglish
)

func (l Language) String() string {
	switch l {
	case LanguageEnglish:
		return "en"
	default:
		return "auto"
	}
}

// OutputLanguage is a lock-free live toggle for the caption engine's
// target language: the UI can flip it mid-stream without restarting
// capture, and in-flight ASR calls keep running with whatever value
// was current when they started.
type OutputLanguage struct {
	v atomic.Uint32
}

// NewOutputLanguage creates a toggle initialized to lang.
func NewOutputLanguage(lang Language) *OutputLanguage {
	ol := &OutputLanguage{}
	ol.Set(lang)
	return ol
}

func (o *OutputLanguage) Get() Language { return Language(o.v.Load()) }
func (o *OutputLanguage) Set(lang Language) { o.v.Store(uint32(lang)) }

// EventKind tags the variant carried by a CaptionEvent.
type EventKind int

const (
	CaptionPartial EventKind = iota
	CaptionFinal
	CaptionReset
)

// Event is what the transcription worker publishes to sinks: Partial
// carries the current best-guess combined text for the in-progress
// utterance, Final carries the settled text once the utterance closes,
// Reset signals the in-progress utterance was discarded (too short to
// be real speech) and any displayed partial should be cleared.
type Event struct {
	Kind EventKind
	Text string
}
