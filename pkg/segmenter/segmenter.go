// Package segmenter turns a continuous 16kHz mono f32 PCM stream into
// discrete speech utterances using simple RMS-threshold VAD, with a
// pre-roll buffer so utterance onset isn't clipped.
package segmenter

import "github.com/rtcaption/engine/pkg/audio"

// maxStashFrames bounds how much pre-roll history accumulates while no
// utterance is open; frames past this are dropped from the front.
const maxStashFrames = 128

// StreamingSegmenter consumes audio in arbitrary-sized chunks via
// PushAudio and emits Partial/Final/Reset events as utterances are
// detected, grown, and closed.
type StreamingSegmenter struct {
	cfg    Config
	limits limits

	// stash holds recent frames while not speaking, used to seed
	// pre-roll once speech is detected. It never grows past
	// maxStashFrames.
	stash [][]float32

	// utterance holds the accumulated samples of the in-progress
	// segment; empty when not speaking.
	utterance []float32

	speaking       bool
	silenceFrames  int
	samplesSinceASR int

	// cursor buffers leftover samples smaller than one frame between
	// PushAudio calls.
	cursor []float32
}

// New builds a StreamingSegmenter from cfg.
func New(cfg Config) *StreamingSegmenter {
	return &StreamingSegmenter{
		cfg:    cfg,
		limits: deriveLimits(cfg),
	}
}

// PushAudio feeds newly captured samples into the segmenter and returns
// zero or more events produced as a result. Samples are consumed frame
// by frame (limits.frameSize samples each); any remainder shorter than
// a full frame is buffered in cursor for the next call.
func (s *StreamingSegmenter) PushAudio(samples []float32) []Event {
	var events []Event

	s.cursor = append(s.cursor, samples...)
	frameSize := s.limits.frameSize

	for len(s.cursor) >= frameSize {
		frame := s.cursor[:frameSize]
		s.cursor = s.cursor[frameSize:]

		events = append(events, s.processFrame(frame)...)
	}

	return events
}

func (s *StreamingSegmenter) processFrame(frame []float32) []Event {
	rms := audio.RMS(frame)
	voiced := rms >= s.cfg.VADThreshold

	if !s.speaking {
		if voiced {
			s.beginUtterance()
			s.appendFrame(frame)
			return nil
		}
		s.pushStash(frame)
		return nil
	}

	s.appendFrame(frame)

	if voiced {
		s.silenceFrames = 0
	} else {
		s.silenceFrames++
	}

	reachedSilence := s.silenceFrames >= s.limits.endSilenceFrames
	reachedMax := len(s.utterance) >= s.limits.maxSegmentSamples

	if reachedSilence || reachedMax {
		return s.closeUtterance()
	}

	s.samplesSinceASR += len(frame)
	if s.samplesSinceASR >= s.limits.asrStepSamples && len(s.utterance) >= s.limits.minSpeechSamples {
		s.samplesSinceASR = 0
		return []Event{{Type: EventPartial, Audio: s.windowAudio()}}
	}

	return nil
}

func (s *StreamingSegmenter) beginUtterance() {
	s.speaking = true
	s.silenceFrames = 0
	s.samplesSinceASR = 0
	s.utterance = s.utterance[:0]
	for _, f := range s.stash {
		s.utterance = append(s.utterance, f...)
	}
	s.trimPreRoll()
}

func (s *StreamingSegmenter) trimPreRoll() {
	if len(s.utterance) <= s.limits.preRollSamples {
		return
	}
	excess := len(s.utterance) - s.limits.preRollSamples
	s.utterance = append(s.utterance[:0:0], s.utterance[excess:]...)
}

func (s *StreamingSegmenter) appendFrame(frame []float32) {
	s.utterance = append(s.utterance, frame...)
}

func (s *StreamingSegmenter) pushStash(frame []float32) {
	cp := append([]float32(nil), frame...)
	s.stash = append(s.stash, cp)
	if len(s.stash) > maxStashFrames {
		s.stash = s.stash[len(s.stash)-maxStashFrames:]
	}
}

// closeUtterance terminates the current utterance. An utterance that,
// not counting the trailing silent frames that closed it, never reached
// MinSpeechMs is too short to be useful and is discarded with a Reset
// instead of a Final. A Final's audio still includes those frames.
func (s *StreamingSegmenter) closeUtterance() []Event {
	u := s.utterance
	speechSamples := len(u) - s.silenceFrames*s.limits.frameSize

	s.speaking = false
	s.silenceFrames = 0
	s.samplesSinceASR = 0
	s.utterance = nil
	s.stash = s.stash[:0]

	if speechSamples < s.limits.minSpeechSamples {
		return []Event{{Type: EventReset}}
	}
	return []Event{{Type: EventFinal, Audio: u}}
}

// windowAudio returns the tail slice of the current utterance used for
// partial decoding: at most MaxWindowS worth of samples, so ASR latency
// on a partial stays bounded regardless of utterance length.
func (s *StreamingSegmenter) windowAudio() []float32 {
	if len(s.utterance) <= s.limits.maxWindowSamples {
		out := make([]float32, len(s.utterance))
		copy(out, s.utterance)
		return out
	}
	start := len(s.utterance) - s.limits.maxWindowSamples
	out := make([]float32, s.limits.maxWindowSamples)
	copy(out, s.utterance[start:])
	return out
}

// Flush forces closure of any in-progress utterance, as if silence had
// just reached EndSilenceS. Used at stream shutdown so trailing speech
// isn't lost.
func (s *StreamingSegmenter) Flush() []Event {
	if !s.speaking {
		return nil
	}
	return s.closeUtterance()
}
