package audio

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

// CaptureAdapter mixes OS-delivered PCM down to 16 kHz mono f32 and
// forwards it to a caller-supplied sink with a non-blocking push: on
// back-pressure the chunk is dropped rather than blocking the audio
// callback thread.
type CaptureAdapter struct {
	logger    Logger
	decimator *Decimator3
	push      func([]float32) bool

	warnedDecodeError atomic.Bool
}

// Logger is the narrow logging surface CaptureAdapter needs; satisfied
// by pkg/logging.Logger without importing it here (avoids a dependency
// cycle between audio and logging).
type Logger interface {
	Warn(msg string, args ...interface{})
}

// NewCaptureAdapter builds a capture adapter. push should perform a
// non-blocking send onto the audio queue and report whether the chunk
// was accepted.
func NewCaptureAdapter(logger Logger, push func([]float32) bool) *CaptureAdapter {
	return &CaptureAdapter{
		logger:    logger,
		decimator: NewDecimator3(),
		push:      push,
	}
}

// HandleInput processes one OS audio-callback buffer. sampleRate must be
// ExpectedSourceSampleRate (48 kHz); anything else fails startup-style
// with ErrUnexpectedSampleRate rather than being silently resampled.
func (c *CaptureAdapter) HandleInput(sampleRate, channels int, format SampleFormat, data []byte) error {
	if sampleRate != ExpectedSourceSampleRate {
		return ErrUnexpectedSampleRate
	}

	mono, err := c.mixToMono(data, channels, format)
	if err != nil {
		if !c.warnedDecodeError.Swap(true) {
			c.logger.Warn("audio decode error, suppressing further occurrences", "error", err)
		}
		return nil
	}

	out := c.decimator.PushAll(mono, make([]float32, 0, len(mono)/3+1))
	if len(out) == 0 {
		return nil
	}
	if !c.push(out) {
		c.logger.Warn("audio queue full, dropping chunk")
	}
	return nil
}

func (c *CaptureAdapter) mixToMono(data []byte, channels int, format SampleFormat) ([]float32, error) {
	switch format {
	case FormatI16:
		samples, err := BytesToI16LE(data)
		if err != nil {
			return nil, err
		}
		return MixInterleavedI16(samples, channels)
	case FormatF32:
		if len(data)%4 != 0 {
			return nil, ErrUnsupportedAudioLayout
		}
		samples := make([]float32, len(data)/4)
		for i := range samples {
			bits := uint32(data[4*i]) | uint32(data[4*i+1])<<8 | uint32(data[4*i+2])<<16 | uint32(data[4*i+3])<<24
			samples[i] = math.Float32frombits(bits)
		}
		return MixInterleavedF32(samples, channels)
	case FormatI16Planar:
		chans, err := splitPlanarI16(data, channels)
		if err != nil {
			return nil, err
		}
		return MixPlanarI16(chans)
	case FormatF32Planar:
		chans, err := splitPlanarF32(data, channels)
		if err != nil {
			return nil, err
		}
		return MixPlanarF32(chans)
	default:
		return nil, ErrUnsupportedAudioLayout
	}
}

// Device wraps a malgo capture-only device configured for 48 kHz input,
// the fixed rate this adapter expects (spec §4.1 / §6). It is the Go
// analogue of the teacher's duplex device setup in cmd/agent/main.go,
// narrowed to capture since this engine has no TTS playback path.
type Device struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device
}

// StartDevice opens a default capture device at ExpectedSourceSampleRate
// and routes every callback buffer through adapter.HandleInput.
func StartDevice(ctx context.Context, adapter *CaptureAdapter, channels int) (*Device, error) {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("audio: init context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = uint32(channels)
	deviceConfig.SampleRate = ExpectedSourceSampleRate
	deviceConfig.Alsa.NoMMap = 1

	onSamples := func(_, input []byte, _ uint32) {
		if len(input) == 0 {
			return
		}
		_ = adapter.HandleInput(ExpectedSourceSampleRate, channels, FormatI16, input)
	}

	device, err := malgo.InitDevice(mctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onSamples})
	if err != nil {
		mctx.Uninit()
		return nil, fmt.Errorf("audio: init device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		mctx.Uninit()
		return nil, fmt.Errorf("audio: start device: %w", err)
	}

	go func() {
		<-ctx.Done()
		device.Uninit()
		mctx.Uninit()
	}()

	return &Device{ctx: mctx, device: device}, nil
}

// Close stops and releases the underlying device and context.
func (d *Device) Close() {
	d.device.Uninit()
	d.ctx.Uninit()
}
