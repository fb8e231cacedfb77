package audio

import "math"

// SampleFormat identifies the encoding and channel layout of raw capture
// samples delivered by the OS. Only little-endian int16 and float32 are
// supported, each in either interleaved or planar layout; anything else
// (in particular big-endian) fails with ErrUnsupportedAudioLayout.
//
// Planar buffers are the layout CoreAudio delivers for multi-channel
// input: one contiguous per-channel run back to back in a single
// buffer, rather than interleaved frames. miniaudio (the library behind
// StartDevice) always normalizes device callbacks to interleaved, so
// FormatI16Planar/FormatF32Planar are only ever reached via a direct
// CaptureAdapter.HandleInput call from a future planar-delivering
// source or from tests.
type SampleFormat int

const (
	FormatI16 SampleFormat = iota
	FormatF32
	FormatI16Planar
	FormatF32Planar
)

// ExpectedSourceSampleRate is the fixed input rate the capture adapter is
// built for. A capture source reporting anything else fails startup.
const ExpectedSourceSampleRate = 48000

// MixInterleavedI16 averages each multi-channel frame of interleaved i16
// little-endian samples down to mono, scaling by 1/32768. channels == 1
// is a straight pass-through (still rescaled to f32).
func MixInterleavedI16(interleaved []int16, channels int) ([]float32, error) {
	if channels <= 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	if len(interleaved)%channels != 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	frames := len(interleaved) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		base := i * channels
		for c := 0; c < channels; c++ {
			sum += float32(interleaved[base+c]) / 32768.0
		}
		out[i] = sum / float32(channels)
	}
	return out, nil
}

// MixInterleavedF32 averages each multi-channel frame of interleaved f32
// samples down to mono.
func MixInterleavedF32(interleaved []float32, channels int) ([]float32, error) {
	if channels <= 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	if len(interleaved)%channels != 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	frames := len(interleaved) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		base := i * channels
		for c := 0; c < channels; c++ {
			sum += interleaved[base+c]
		}
		out[i] = sum / float32(channels)
	}
	return out, nil
}

// MixPlanarI16 averages the i-th sample across each channel's own buffer.
// All channel buffers must share the same length.
func MixPlanarI16(channelsData [][]int16) ([]float32, error) {
	if len(channelsData) == 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	n := len(channelsData[0])
	for _, ch := range channelsData {
		if len(ch) != n {
			return nil, ErrUnsupportedAudioLayout
		}
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		var sum float32
		for _, ch := range channelsData {
			sum += float32(ch[i]) / 32768.0
		}
		out[i] = sum / float32(len(channelsData))
	}
	return out, nil
}

// MixPlanarF32 is the float32 analogue of MixPlanarI16.
func MixPlanarF32(channelsData [][]float32) ([]float32, error) {
	if len(channelsData) == 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	n := len(channelsData[0])
	for _, ch := range channelsData {
		if len(ch) != n {
			return nil, ErrUnsupportedAudioLayout
		}
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		var sum float32
		for _, ch := range channelsData {
			sum += ch[i]
		}
		out[i] = sum / float32(len(channelsData))
	}
	return out, nil
}

// splitPlanarI16 slices a flat byte buffer holding channels
// back-to-back per-channel i16LE runs of equal length into one []int16
// per channel, ready for MixPlanarI16.
func splitPlanarI16(data []byte, channels int) ([][]int16, error) {
	if channels <= 0 || len(data)%channels != 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	chanBytes := len(data) / channels
	out := make([][]int16, channels)
	for c := 0; c < channels; c++ {
		ch, err := BytesToI16LE(data[c*chanBytes : (c+1)*chanBytes])
		if err != nil {
			return nil, err
		}
		out[c] = ch
	}
	return out, nil
}

// splitPlanarF32 is the float32 analogue of splitPlanarI16.
func splitPlanarF32(data []byte, channels int) ([][]float32, error) {
	if channels <= 0 || len(data)%channels != 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	chanBytes := len(data) / channels
	if chanBytes%4 != 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	out := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		chData := data[c*chanBytes : (c+1)*chanBytes]
		samples := make([]float32, len(chData)/4)
		for i := range samples {
			bits := uint32(chData[4*i]) | uint32(chData[4*i+1])<<8 | uint32(chData[4*i+2])<<16 | uint32(chData[4*i+3])<<24
			samples[i] = math.Float32frombits(bits)
		}
		out[c] = samples
	}
	return out, nil
}

// BytesToI16LE reinterprets a little-endian i16 byte buffer. An odd
// byte count means the layout can't be trusted.
func BytesToI16LE(data []byte) ([]int16, error) {
	if len(data)%2 != 0 {
		return nil, ErrUnsupportedAudioLayout
	}
	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(data[2*i]) | int16(data[2*i+1])<<8
	}
	return out, nil
}
