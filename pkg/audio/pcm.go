package audio

import "math"

// FloatToPCM16LE converts 16 kHz mono f32 samples in [-1.0, 1.0] to
// little-endian signed 16-bit PCM bytes, the format the WAV container
// (and most cloud ASR HTTP APIs) expect.
func FloatToPCM16LE(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		v := int16(s * 32767.0)
		out[2*i] = byte(v)
		out[2*i+1] = byte(v >> 8)
	}
	return out
}

// RMS computes the root-mean-square energy of a frame of f32 samples,
// the VAD quantum used throughout the segmenter.
func RMS(frame []float32) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		f := float64(s)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(frame)))
}
