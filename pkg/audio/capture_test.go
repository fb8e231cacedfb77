package audio

import "testing"

type noopLogger struct{ warnings int }

func (l *noopLogger) Warn(msg string, args ...interface{}) { l.warnings++ }

func TestCaptureAdapter_WrongSampleRate(t *testing.T) {
	log := &noopLogger{}
	a := NewCaptureAdapter(log, func([]float32) bool { return true })

	err := a.HandleInput(44100, 1, FormatI16, make([]byte, 100))
	if err != ErrUnexpectedSampleRate {
		t.Fatalf("expected ErrUnexpectedSampleRate, got %v", err)
	}
}

func TestCaptureAdapter_DecodesAndDecimates(t *testing.T) {
	log := &noopLogger{}
	var got []float32
	a := NewCaptureAdapter(log, func(chunk []float32) bool {
		got = append(got, chunk...)
		return true
	})

	// 48kHz mono, 300 samples of full-scale -> 100 decimated samples.
	data := make([]byte, 300*2)
	for i := 0; i < 300; i++ {
		data[2*i] = 0xFF
		data[2*i+1] = 0x7F
	}

	if err := a.HandleInput(ExpectedSourceSampleRate, 1, FormatI16, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("expected 100 decimated samples, got %d", len(got))
	}
}

func TestCaptureAdapter_QueueFullWarns(t *testing.T) {
	log := &noopLogger{}
	a := NewCaptureAdapter(log, func([]float32) bool { return false })

	data := make([]byte, 6)
	data[0], data[1] = 0xFF, 0x7F
	data[2], data[3] = 0xFF, 0x7F
	data[4], data[5] = 0xFF, 0x7F

	if err := a.HandleInput(ExpectedSourceSampleRate, 1, FormatI16, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.warnings != 1 {
		t.Errorf("expected 1 warning for dropped chunk, got %d", log.warnings)
	}
}

func TestCaptureAdapter_PlanarI16Decimates(t *testing.T) {
	log := &noopLogger{}
	var got []float32
	a := NewCaptureAdapter(log, func(chunk []float32) bool {
		got = append(got, chunk...)
		return true
	})

	// 2-channel planar, 300 frames per channel, full scale on both
	// channels -> mono mix is full scale -> 100 decimated samples.
	frameBytes := 300 * 2
	data := make([]byte, frameBytes*2)
	for i := 0; i < 300; i++ {
		data[2*i] = 0xFF
		data[2*i+1] = 0x7F
		data[frameBytes+2*i] = 0xFF
		data[frameBytes+2*i+1] = 0x7F
	}

	if err := a.HandleInput(ExpectedSourceSampleRate, 2, FormatI16Planar, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("expected 100 decimated samples, got %d", len(got))
	}
}

func TestCaptureAdapter_PlanarI16_MismatchedLengthErrors(t *testing.T) {
	log := &noopLogger{}
	a := NewCaptureAdapter(log, func([]float32) bool { return true })

	// odd total length can't split evenly across 2 channels.
	if err := a.HandleInput(ExpectedSourceSampleRate, 2, FormatI16Planar, make([]byte, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.warnings != 1 {
		t.Errorf("expected 1 warning for undecodable planar layout, got %d", log.warnings)
	}
}

func TestCaptureAdapter_DecodeErrorWarnedOnce(t *testing.T) {
	log := &noopLogger{}
	a := NewCaptureAdapter(log, func([]float32) bool { return true })

	bad := []byte{0x01} // odd length -> decode error
	for i := 0; i < 3; i++ {
		if err := a.HandleInput(ExpectedSourceSampleRate, 1, FormatI16, bad); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if log.warnings != 1 {
		t.Errorf("expected exactly 1 warning across repeated decode errors, got %d", log.warnings)
	}
}
