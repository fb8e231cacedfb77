package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rtcaption/engine/pkg/audio"
)

// CloudBackend calls an OpenAI-compatible multipart transcription API.
// Same-language requests hit TranscriptionURL; translate requests hit
// TranslationURL, mirroring the split the upstream API exposes. No
// "language" field is sent on either endpoint, so the API always
// auto-detects the spoken language.
type CloudBackend struct {
	apiKey           string
	model            string
	transcriptionURL string
	translationURL   string
	httpClient       *http.Client
}

// CloudConfig configures a CloudBackend. Zero-value URL fields default
// to the OpenAI API.
type CloudConfig struct {
	APIKey           string
	Model            string
	TranscriptionURL string
	TranslationURL   string
	HTTPClient       *http.Client
}

func NewCloudBackend(cfg CloudConfig) *CloudBackend {
	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	transcriptionURL := cfg.TranscriptionURL
	if transcriptionURL == "" {
		transcriptionURL = "https://api.openai.com/v1/audio/transcriptions"
	}
	translationURL := cfg.TranslationURL
	if translationURL == "" {
		translationURL = "https://api.openai.com/v1/audio/translations"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &CloudBackend{
		apiKey:           cfg.APIKey,
		model:            model,
		transcriptionURL: transcriptionURL,
		translationURL:   translationURL,
		httpClient:       client,
	}
}

func (b *CloudBackend) Name() string { return "cloud" }

func (b *CloudBackend) Transcribe(ctx context.Context, req Request) (string, error) {
	if len(req.PCM) == 0 {
		return "", ErrEmptyAudio
	}

	wavData := audio.NewWavBuffer(audio.FloatToPCM16LE(req.PCM), req.SampleHz)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("model", b.model); err != nil {
		return "", err
	}

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, bytes.NewReader(wavData)); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	url := b.transcriptionURL
	if req.Translate {
		url = b.translationURL
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody interface{}
		json.NewDecoder(resp.Body).Decode(&errBody)
		return "", fmt.Errorf("asr: cloud backend error (status %d): %v", resp.StatusCode, errBody)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Text, nil
}
