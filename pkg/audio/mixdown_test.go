package audio

import "testing"

func TestMixInterleavedI16_Mono(t *testing.T) {
	samples := []int16{32767, -32768}
	out, err := MixInterleavedI16(samples, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(out))
	}
}

func TestMixInterleavedI16_Stereo(t *testing.T) {
	// one frame: left=32767, right=-32768 -> average ~ 0
	samples := []int16{32767, -32768}
	out, err := MixInterleavedI16(samples, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 mixed frame, got %d", len(out))
	}
	if out[0] < -0.01 || out[0] > 0.01 {
		t.Errorf("expected near-zero mix, got %v", out[0])
	}
}

func TestMixInterleavedI16_BadChannelCount(t *testing.T) {
	if _, err := MixInterleavedI16([]int16{1, 2, 3}, 2); err != ErrUnsupportedAudioLayout {
		t.Errorf("expected ErrUnsupportedAudioLayout, got %v", err)
	}
}

func TestMixPlanarI16(t *testing.T) {
	left := []int16{32767, 32767}
	right := []int16{-32768, 0}
	out, err := MixPlanarI16([][]int16{left, right})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 mixed samples, got %d", len(out))
	}
	if out[0] < -0.01 || out[0] > 0.01 {
		t.Errorf("expected near-zero mix for sample 0, got %v", out[0])
	}
}

func TestMixPlanarI16_MismatchedLengths(t *testing.T) {
	_, err := MixPlanarI16([][]int16{{1, 2}, {1}})
	if err != ErrUnsupportedAudioLayout {
		t.Errorf("expected ErrUnsupportedAudioLayout, got %v", err)
	}
}

func TestMixPlanarF32(t *testing.T) {
	left := []float32{1, 1}
	right := []float32{-1, 0}
	out, err := MixPlanarF32([][]float32{left, right})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != 0 || out[1] != 0.5 {
		t.Errorf("unexpected planar mix: %v", out)
	}
}

func TestMixPlanarF32_MismatchedLengths(t *testing.T) {
	_, err := MixPlanarF32([][]float32{{1, 2}, {1}})
	if err != ErrUnsupportedAudioLayout {
		t.Errorf("expected ErrUnsupportedAudioLayout, got %v", err)
	}
}

func TestBytesToI16LE(t *testing.T) {
	data := []byte{0xFF, 0x7F, 0x00, 0x80}
	out, err := BytesToI16LE(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != 32767 || out[1] != -32768 {
		t.Errorf("unexpected decode: %v", out)
	}
}

func TestBytesToI16LE_OddLength(t *testing.T) {
	if _, err := BytesToI16LE([]byte{0x01}); err != ErrUnsupportedAudioLayout {
		t.Errorf("expected ErrUnsupportedAudioLayout, got %v", err)
	}
}
