package asr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeepgramBackend_ParsesTranscript(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{
				"channels": []any{
					map[string]any{
						"alternatives": []any{
							map[string]any{"transcript": "testing one two"},
						},
					},
				},
			},
		})
	}))
	defer srv.Close()

	b := NewDeepgramBackend(DeepgramConfig{APIKey: "key", URL: srv.URL})
	text, err := b.Transcribe(context.Background(), Request{PCM: []float32{0.1, 0.2}, SampleHz: 16000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "testing one two" {
		t.Errorf("expected %q, got %q", "testing one two", text)
	}
	if gotContentType != "audio/l16; rate=16000; channels=1" {
		t.Errorf("unexpected content-type: %q", gotContentType)
	}
}

func TestDeepgramBackend_EmptyAudio(t *testing.T) {
	b := NewDeepgramBackend(DeepgramConfig{})
	_, err := b.Transcribe(context.Background(), Request{})
	if err != ErrEmptyAudio {
		t.Errorf("expected ErrEmptyAudio, got %v", err)
	}
}

func TestDeepgramBackend_NoTranscriptReturnsEmptyString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": map[string]any{"channels": []any{}}})
	}))
	defer srv.Close()

	b := NewDeepgramBackend(DeepgramConfig{URL: srv.URL})
	text, err := b.Transcribe(context.Background(), Request{PCM: []float32{0.1}, SampleHz: 16000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty transcript, got %q", text)
	}
}
