package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rtcaption/engine/pkg/audio"
)

// DeepgramBackend posts raw linear16 PCM directly to Deepgram's
// synchronous /listen endpoint. Unlike CloudBackend it skips the WAV
// container and multipart envelope entirely: Deepgram accepts a raw
// PCM body given an accurate Content-Type rate/channel hint.
type DeepgramBackend struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

type DeepgramConfig struct {
	APIKey     string
	Model      string // defaults to "nova-2"
	URL        string // defaults to Deepgram's public /listen endpoint
	HTTPClient *http.Client
}

func NewDeepgramBackend(cfg DeepgramConfig) *DeepgramBackend {
	model := cfg.Model
	if model == "" {
		model = "nova-2"
	}
	u := cfg.URL
	if u == "" {
		u = "https://api.deepgram.com/v1/listen"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &DeepgramBackend{apiKey: cfg.APIKey, url: u, model: model, httpClient: client}
}

func (b *DeepgramBackend) Name() string { return "deepgram" }

func (b *DeepgramBackend) Transcribe(ctx context.Context, req Request) (string, error) {
	if len(req.PCM) == 0 {
		return "", ErrEmptyAudio
	}

	pcm16 := audio.FloatToPCM16LE(req.PCM)

	u, err := url.Parse(b.url)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("model", b.model)
	q.Set("smart_format", "true")
	if req.Translate {
		q.Set("detect_language", "true")
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(pcm16))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Token "+b.apiKey)
	httpReq.Header.Set("Content-Type", fmt.Sprintf("audio/l16; rate=%d; channels=1", req.SampleHz))

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("asr: deepgram error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Results.Channels) == 0 || len(result.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}
	return result.Results.Channels[0].Alternatives[0].Transcript, nil
}
