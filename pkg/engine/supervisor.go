// Package engine wires audio capture, segmentation, transcription, and
// caption publishing into one running pipeline.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rtcaption/engine/pkg/asr"
	"github.com/rtcaption/engine/pkg/captioning"
	"github.com/rtcaption/engine/pkg/logging"
	"github.com/rtcaption/engine/pkg/metrics"
	"github.com/rtcaption/engine/pkg/segmenter"
	"github.com/rtcaption/engine/pkg/sink"
)

// pollInterval bounds how long the transcription loop blocks waiting
// for a segment event before re-checking the stop flag, so shutdown
// never waits longer than this to notice.
const pollInterval = 50 * time.Millisecond

// Supervisor owns the bounded queues and goroutines connecting audio
// capture to caption sinks. There is no mutex on the hot path: the stop
// flag and output-language toggle are both atomics, and the queues are
// channels.
type Supervisor struct {
	cfg Config

	seg    *segmenter.StreamingSegmenter
	worker *captioning.Worker
	sinks  []sink.Sink
	logger logging.Logger

	outputLang *captioning.OutputLanguage

	audioCh chan []float32
	segCh   chan segmenter.Event

	stop    atomic.Bool
	running atomic.Bool
	wg      sync.WaitGroup
}

// New builds a Supervisor from cfg, a constructed ASR backend, and the
// sinks that should receive every caption event.
func New(cfg Config, backend asr.Backend, sinks []sink.Sink, logger logging.Logger) *Supervisor {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	outputLang := captioning.NewOutputLanguage(cfg.OutputLanguage)

	return &Supervisor{
		cfg:        cfg,
		seg:        segmenter.New(cfg.Segmenter),
		worker:     captioning.NewWorker(backend, outputLang, cfg.Segmenter.SampleRateHz, cfg.CommitThreshold),
		sinks:      sinks,
		logger:     logger,
		outputLang: outputLang,
		audioCh:    make(chan []float32, cfg.AudioQueueSize),
		segCh:      make(chan segmenter.Event, cfg.SegmentQueueSize),
	}
}

// OutputLanguage returns the live output-language toggle so a UI or CLI
// command can flip it mid-stream.
func (s *Supervisor) OutputLanguage() *captioning.OutputLanguage { return s.outputLang }

// PushAudio offers a chunk of 16kHz mono f32 samples to the pipeline.
// It never blocks: if the audio queue is full the chunk is dropped and
// false is returned, which is what pkg/audio.CaptureAdapter logs as a
// warning.
func (s *Supervisor) PushAudio(chunk []float32) bool {
	select {
	case s.audioCh <- chunk:
		return true
	default:
		metrics.AudioChunksDropped.Inc()
		return false
	}
}

// Start spawns the segmentation and transcription goroutines. It
// returns ErrAlreadyRunning if called twice.
func (s *Supervisor) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	s.wg.Add(2)
	go s.segmentLoop(ctx)
	go s.transcribeLoop(ctx)
	return nil
}

// segmentLoop drains audioCh, feeds the segmenter, and forwards
// resulting events to segCh. When segCh is full, stale Partial events
// are dropped in favor of the newest one so the display never falls
// meaningfully behind; Final and Reset events are never dropped.
func (s *Supervisor) segmentLoop(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.segCh)

	for {
		select {
		case <-ctx.Done():
			s.flushRemaining()
			return
		case chunk, ok := <-s.audioCh:
			if !ok {
				s.flushRemaining()
				return
			}
			for _, ev := range s.seg.PushAudio(chunk) {
				s.emitSegment(ev)
			}
		}
	}
}

func (s *Supervisor) flushRemaining() {
	for _, ev := range s.seg.Flush() {
		s.emitSegment(ev)
	}
}

func (s *Supervisor) emitSegment(ev segmenter.Event) {
	if ev.Type == segmenter.EventFinal || ev.Type == segmenter.EventReset {
		s.segCh <- ev
		return
	}

	select {
	case s.segCh <- ev:
	default:
		// queue is full; drop the oldest queued partial to make room
		// for this fresher one rather than blocking capture.
		select {
		case <-s.segCh:
			metrics.PartialsCoalesced.Inc()
		default:
		}
		select {
		case s.segCh <- ev:
		default:
			metrics.SegmentsDropped.Inc()
		}
	}
}

// transcribeLoop drains segCh and publishes the caption events the
// worker produces to every configured sink. It polls with a short
// timeout so StopAndJoin's stop flag is noticed promptly even with no
// traffic.
func (s *Supervisor) transcribeLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if s.stop.Load() {
			return
		}
		select {
		case <-ctx.Done():
			return
		case seg, ok := <-s.segCh:
			if !ok {
				return
			}
			s.handleSegment(ctx, seg)
		case <-ticker.C:
		}
	}
}

func (s *Supervisor) handleSegment(ctx context.Context, seg segmenter.Event) {
	ev, err := s.worker.HandleSegment(ctx, seg)
	if err != nil {
		s.logger.Error("transcription failed", "error", err)
		return
	}
	if ev == nil {
		return
	}

	metrics.CaptionEventsTotal.WithLabelValues(kindLabel(ev.Kind)).Inc()

	for _, snk := range s.sinks {
		if err := snk.Publish(ctx, *ev); err != nil {
			s.logger.Warn("sink publish failed", "error", err)
		}
	}
}

func kindLabel(k captioning.EventKind) string {
	switch k {
	case captioning.CaptionFinal:
		return "final"
	case captioning.CaptionReset:
		return "reset"
	default:
		return "partial"
	}
}

// StopAndJoin signals shutdown and blocks until both goroutines have
// exited. Safe to call once; a second call is a no-op.
func (s *Supervisor) StopAndJoin() {
	if !s.stop.CompareAndSwap(false, true) {
		return
	}
	close(s.audioCh)
	s.wg.Wait()
}
