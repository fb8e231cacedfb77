package engine

import "errors"

var (
	ErrUnknownBackend       = errors.New("engine: unknown ASR engine (want \"local\" or \"cloud\")")
	ErrUnknownCloudProvider = errors.New("engine: unknown cloud provider (want \"openai\" or \"deepgram\")")
	ErrMissingModelPath     = errors.New("engine: local engine requires a whisper model path")
	ErrAlreadyRunning       = errors.New("engine: supervisor already started")
	ErrNotRunning           = errors.New("engine: supervisor not started")
)
