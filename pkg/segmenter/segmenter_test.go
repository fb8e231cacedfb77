package segmenter

import "testing"

func testConfig() Config {
	return Config{
		SampleRateHz: 16000,
		VADThreshold: 0.1,
		EndSilenceS:  0.1,  // 5 frames
		MaxSegmentS:  1.0,  // 50 frames
		PreRollS:     0.04, // 2 frames
		MinSpeechMs:  60,   // 3 frames
		ASRStepMs:    40,   // 2 frames
		MaxWindowS:   1.0,
	}
}

func silentFrame(n int) []float32 { return make([]float32, n) }

func voicedFrame(n int) []float32 {
	f := make([]float32, n)
	for i := range f {
		f[i] = 0.5
	}
	return f
}

func frameSize(cfg Config) int {
	return deriveLimits(cfg).frameSize
}

func TestPushAudio_SilenceOnly(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)
	fs := frameSize(cfg)

	var events []Event
	for i := 0; i < 50; i++ {
		events = append(events, s.PushAudio(silentFrame(fs))...)
	}

	if len(events) != 0 {
		t.Fatalf("expected no events on silence, got %d", len(events))
	}
}

func TestPushAudio_SingleUtterance(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)
	fs := frameSize(cfg)

	var events []Event
	for i := 0; i < 10; i++ {
		events = append(events, s.PushAudio(voicedFrame(fs))...)
	}
	for i := 0; i < 10; i++ {
		events = append(events, s.PushAudio(silentFrame(fs))...)
	}

	var finals, partials, resets int
	for _, e := range events {
		switch e.Type {
		case EventFinal:
			finals++
		case EventPartial:
			partials++
		case EventReset:
			resets++
		}
	}

	if finals != 1 {
		t.Fatalf("expected exactly 1 Final, got %d (events=%+v)", finals, events)
	}
	if resets != 0 {
		t.Fatalf("expected no Reset, got %d", resets)
	}
	if partials == 0 {
		t.Fatalf("expected at least one Partial before Final")
	}
}

func TestPushAudio_ShortBlipProducesReset(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)
	fs := frameSize(cfg)

	var events []Event
	// one voiced frame, then silence long enough to close the utterance.
	events = append(events, s.PushAudio(voicedFrame(fs))...)
	for i := 0; i < 10; i++ {
		events = append(events, s.PushAudio(silentFrame(fs))...)
	}

	var resets, finals int
	for _, e := range events {
		if e.Type == EventReset {
			resets++
		}
		if e.Type == EventFinal {
			finals++
		}
	}
	if resets != 1 {
		t.Fatalf("expected exactly 1 Reset for a too-short utterance, got %d", resets)
	}
	if finals != 0 {
		t.Fatalf("expected no Final for a too-short utterance, got %d", finals)
	}
}

func TestPushAudio_MaxSegmentFlush(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)
	fs := frameSize(cfg)

	var events []Event
	// continuous voice, well past MaxSegmentS, with no silence gap.
	for i := 0; i < 120; i++ {
		events = append(events, s.PushAudio(voicedFrame(fs))...)
	}

	var finals int
	var maxLen int
	for _, e := range events {
		if e.Type == EventFinal {
			finals++
			if len(e.Audio) > maxLen {
				maxLen = len(e.Audio)
			}
		}
	}
	if finals == 0 {
		t.Fatalf("expected at least one Final from max-segment flush")
	}
	lim := deriveLimits(cfg)
	if maxLen > lim.maxSegmentSamples {
		t.Errorf("Final exceeded max segment samples: %d > %d", maxLen, lim.maxSegmentSamples)
	}
}

func TestPushAudio_PreRollBound(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)
	fs := frameSize(cfg)
	lim := deriveLimits(cfg)

	// plenty of silence to fill the stash past its pre-roll bound,
	// then a short voiced run that immediately closes.
	for i := 0; i < 20; i++ {
		s.PushAudio(silentFrame(fs))
	}
	var events []Event
	for i := 0; i < 6; i++ {
		events = append(events, s.PushAudio(voicedFrame(fs))...)
	}
	for i := 0; i < 10; i++ {
		events = append(events, s.PushAudio(silentFrame(fs))...)
	}

	for _, e := range events {
		if e.Type != EventFinal {
			continue
		}
		// utterance = pre-roll + voiced run + trailing silence run (the
		// silenceFrames that tripped endSilenceFrames are appended to
		// the utterance before closeUtterance fires); pre-roll
		// contribution must never exceed the configured bound.
		voicedSamples := 6 * fs
		silenceSamples := lim.endSilenceFrames * fs
		preRollContribution := len(e.Audio) - voicedSamples - silenceSamples
		if preRollContribution > lim.preRollSamples {
			t.Errorf("pre-roll contribution %d exceeds bound %d", preRollContribution, lim.preRollSamples)
		}
	}
}

func TestPushAudio_PartialWindowBounded(t *testing.T) {
	cfg := testConfig()
	cfg.MaxWindowS = 0.08 // 4 frames
	s := New(cfg)
	fs := frameSize(cfg)
	lim := deriveLimits(cfg)

	var events []Event
	for i := 0; i < 30; i++ {
		events = append(events, s.PushAudio(voicedFrame(fs))...)
	}

	for _, e := range events {
		if e.Type != EventPartial {
			continue
		}
		if len(e.Audio) > lim.maxWindowSamples {
			t.Errorf("partial payload length %d exceeds max window samples %d", len(e.Audio), lim.maxWindowSamples)
		}
	}
}

func TestFlush_ClosesInProgressUtterance(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)
	fs := frameSize(cfg)

	for i := 0; i < 10; i++ {
		s.PushAudio(voicedFrame(fs))
	}

	events := s.Flush()
	if len(events) != 1 || events[0].Type != EventFinal {
		t.Fatalf("expected Flush to emit exactly one Final, got %+v", events)
	}

	// a second flush with nothing open is a no-op.
	if events := s.Flush(); events != nil {
		t.Errorf("expected no events from Flush on idle segmenter, got %+v", events)
	}
}
