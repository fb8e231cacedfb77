package captioning

import (
	"context"
	"fmt"

	"github.com/rtcaption/engine/pkg/asr"
	"github.com/rtcaption/engine/pkg/segmenter"
	"github.com/rtcaption/engine/pkg/stabilizer"
)

// CommitThreshold is the default number of consecutive agreeing
// partials a word must survive before the stabilizer commits it. Used
// by NewWorker when the caller doesn't supply a positive override
// (engine.Config.CommitThreshold, wired to the --partial-stable-iters
// flag).
const CommitThreshold = stabilizer.DefaultCommitThreshold

// Worker turns the segmenter's Partial/Final/Reset stream for a single
// utterance into stabilized caption text, calling an ASR backend once
// per segmenter event.
type Worker struct {
	backend  asr.Backend
	stab     *stabilizer.Stabilizer
	lang     *OutputLanguage
	sampleHz int

	lastEmitted string
}

// NewWorker builds a transcription worker. lang is shared with the rest
// of the engine so a live language toggle takes effect on the very next
// ASR call. commitThreshold configures the stabilizer's agreement
// count; a value <= 0 falls back to CommitThreshold.
func NewWorker(backend asr.Backend, lang *OutputLanguage, sampleHz int, commitThreshold int) *Worker {
	if commitThreshold <= 0 {
		commitThreshold = CommitThreshold
	}
	return &Worker{
		backend:  backend,
		stab:     stabilizer.New(commitThreshold),
		lang:     lang,
		sampleHz: sampleHz,
	}
}

// HandleSegment transcribes one segmenter event and returns the caption
// event it produces, or nil if nothing changed (e.g. a duplicate
// partial that the stabilizer folded into the same text as before).
func (w *Worker) HandleSegment(ctx context.Context, seg segmenter.Event) (*Event, error) {
	switch seg.Type {
	case segmenter.EventReset:
		hadDisplayedCaption := w.lastEmitted != ""
		w.stab.Reset()
		w.lastEmitted = ""
		if !hadDisplayedCaption {
			return nil, nil
		}
		return &Event{Kind: CaptionReset}, nil

	case segmenter.EventPartial:
		text, err := w.transcribe(ctx, seg.Audio)
		if err != nil {
			return nil, fmt.Errorf("captioning: partial transcribe: %w", err)
		}
		state := w.stab.Update(text)
		combined := state.Combined()
		if combined == w.lastEmitted {
			return nil, nil
		}
		w.lastEmitted = combined
		return &Event{Kind: CaptionPartial, Text: combined}, nil

	case segmenter.EventFinal:
		text, err := w.transcribe(ctx, seg.Audio)
		if err != nil {
			return nil, fmt.Errorf("captioning: final transcribe: %w", err)
		}
		final := w.stab.Finalize(text)
		w.stab.Reset()
		w.lastEmitted = ""
		return &Event{Kind: CaptionFinal, Text: final}, nil

	default:
		return nil, fmt.Errorf("captioning: unknown segmenter event type %v", seg.Type)
	}
}

func (w *Worker) transcribe(ctx context.Context, pcm []float32) (string, error) {
	lang := LanguageAuto
	if w.lang != nil {
		lang = w.lang.Get()
	}
	req := asr.Request{PCM: pcm, SampleHz: w.sampleHz, Translate: lang == LanguageEnglish}
	return w.backend.Transcribe(ctx, req)
}
