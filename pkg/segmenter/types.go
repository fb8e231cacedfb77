package segmenter

import "time"

// frameDuration is the VAD quantum: a 20ms block (320 samples at 16kHz).
const frameDuration = 20 * time.Millisecond

// Config holds the immutable settings a StreamingSegmenter is built
// from. All durations are converted to integer frame/sample counts at
// construction time (see deriveLimits); those derived values never
// change afterward.
type Config struct {
	SampleRateHz int     // fixed at 16000 in practice
	VADThreshold float64 // RMS above which a frame is voiced
	EndSilenceS  float64 // silence tail (s) that closes a segment
	MaxSegmentS  float64 // hard cap (s) on utterance length
	PreRollS     float64 // audio (s) preserved before voice onset
	MinSpeechMs  uint64  // minimum utterance length (ms) before partials/finals
	ASRStepMs    uint64  // minimum gap (ms) between partial decodes
	MaxWindowS   float64 // sliding window (s) for partials; 0 = full utterance
}

// DefaultConfig returns the configuration surface defaults from the
// engine's spec (§6).
func DefaultConfig() Config {
	return Config{
		SampleRateHz: 16000,
		VADThreshold: 0.012,
		EndSilenceS:  0.6,
		MaxSegmentS:  20.0,
		PreRollS:     0.25,
		MinSpeechMs:  300,
		ASRStepMs:    350,
		MaxWindowS:   12.0,
	}
}

// limits holds the Config's derived frame/sample counts, computed once
// at construction and never recomputed.
type limits struct {
	frameSize          int
	endSilenceFrames   int
	minSpeechSamples   int
	maxSegmentSamples  int
	preRollSamples     int
	asrStepSamples     int
	maxWindowSamples   int
}

func deriveLimits(cfg Config) limits {
	frameSize := int(roundAtLeast(float64(cfg.SampleRateHz)*frameDuration.Seconds(), 1))

	endSilenceFrames := int(roundAtLeast(cfg.EndSilenceS/frameDuration.Seconds(), 1))

	maxSegmentSamples := int(roundAtLeast(cfg.MaxSegmentS*float64(cfg.SampleRateHz), 1))
	preRollSamples := int(roundAtLeast(cfg.PreRollS*float64(cfg.SampleRateHz), 0))

	minSpeechSamples := int(roundAtLeast((float64(cfg.MinSpeechMs)/1000.0)*float64(cfg.SampleRateHz), 1))
	asrStepSamples := int(roundAtLeast((float64(cfg.ASRStepMs)/1000.0)*float64(cfg.SampleRateHz), 1))

	maxWindowSamples := int(roundAtLeast(cfg.MaxWindowS*float64(cfg.SampleRateHz), 0))
	if maxWindowSamples == 0 {
		maxWindowSamples = maxSegmentSamples
	}
	if maxWindowSamples > maxSegmentSamples {
		maxWindowSamples = maxSegmentSamples
	}

	return limits{
		frameSize:         max(frameSize, 1),
		endSilenceFrames:  endSilenceFrames,
		minSpeechSamples:  minSpeechSamples,
		maxSegmentSamples: maxSegmentSamples,
		preRollSamples:    preRollSamples,
		asrStepSamples:    asrStepSamples,
		maxWindowSamples:  maxWindowSamples,
	}
}

func roundAtLeast(v, floor float64) float64 {
	r := round(v)
	if r < floor {
		return floor
	}
	return r
}

func round(v float64) float64 {
	if v < 0 {
		return -round(-v)
	}
	return float64(int64(v + 0.5))
}

// EventType tags the variant carried by a StreamingEvent.
type EventType int

const (
	EventPartial EventType = iota
	EventFinal
	EventReset
)

// Event is the tagged union emitted by push_audio: Partial carries the
// tail window of the current utterance, Final carries the full
// utterance, Reset carries no audio.
type Event struct {
	Type  EventType
	Audio []float32
}
