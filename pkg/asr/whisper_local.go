package asr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// LocalBackend runs inference in-process via whisper.cpp's CGO bindings,
// avoiding network round trips entirely. The model is loaded once and
// shared across calls; each Transcribe call opens its own context since
// whisper.cpp contexts are not safe for concurrent use.
type LocalBackend struct {
	model    whisperlib.Model
	language string

	mu sync.Mutex
}

// NewLocalBackend loads a whisper.cpp model from modelPath. language is
// the BCP-47 hint passed to the model; translate requests are handled
// per-call via Request.Translate rather than at load time.
func NewLocalBackend(modelPath, language string) (*LocalBackend, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("asr: %w: empty model path", ErrBackendUnavailable)
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("asr: load whisper model %q: %w", modelPath, err)
	}
	if language == "" {
		language = "auto"
	}
	return &LocalBackend{model: model, language: language}, nil
}

func (b *LocalBackend) Name() string { return "whisper-local" }

// Close releases the underlying model. Safe to call once, after all
// Transcribe calls have returned.
func (b *LocalBackend) Close() error {
	if b.model == nil {
		return nil
	}
	return b.model.Close()
}

func (b *LocalBackend) Transcribe(ctx context.Context, req Request) (string, error) {
	if len(req.PCM) == 0 {
		return "", ErrEmptyAudio
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Each context carries its own decode state; the model itself is
	// reentrant across goroutines so no lock is needed for NewContext,
	// but we serialize inference to bound CPU/memory use under load.
	b.mu.Lock()
	defer b.mu.Unlock()

	wctx, err := b.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("asr: create whisper context: %w", err)
	}

	lang := b.language
	if req.Translate {
		lang = "en"
	}
	if err := wctx.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("asr: set language %q: %w", lang, err)
	}

	if err := wctx.Process(req.PCM, nil, nil, nil); err != nil {
		return "", fmt.Errorf("asr: process audio: %w", err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("asr: read segment: %w", err)
		}
		text := strings.TrimSpace(segment.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}
