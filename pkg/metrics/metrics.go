// Package metrics exposes Prometheus counters and histograms for the
// captioning pipeline's health: drop rates, ASR latency/failures, and
// event throughput.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AudioChunksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtcaption_audio_chunks_dropped_total",
		Help: "Audio chunks dropped because the capture queue was full",
	})

	SegmentsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtcaption_segments_dropped_total",
		Help: "Segmenter events dropped because the transcription queue was full",
	})

	PartialsCoalesced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtcaption_partials_coalesced_total",
		Help: "Stale partial events discarded in favor of a newer one while the queue was backed up",
	})

	ASRRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtcaption_asr_requests_total",
		Help: "ASR backend calls by backend and outcome",
	}, []string{"backend", "status"})

	ASRRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rtcaption_asr_request_duration_seconds",
		Help:    "ASR transcription call duration",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"backend"})

	CaptionEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtcaption_caption_events_total",
		Help: "Caption events emitted by kind",
	}, []string{"kind"})

	SegmentsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rtcaption_segments_open",
		Help: "1 while an utterance is currently being captured, 0 otherwise",
	})
)
