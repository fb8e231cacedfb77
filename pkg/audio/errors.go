package audio

import "errors"

var (
	// ErrUnexpectedSampleRate is returned when the capture source reports a
	// sample rate other than the fixed rate the decimator was built for.
	ErrUnexpectedSampleRate = errors.New("audio: unexpected capture sample rate")

	// ErrUnsupportedAudioLayout is returned for big-endian or mixed-layout
	// buffers the mixdown routines cannot interpret.
	ErrUnsupportedAudioLayout = errors.New("audio: unsupported audio layout")
)
