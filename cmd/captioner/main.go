package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rtcaption/engine/pkg/asr"
	"github.com/rtcaption/engine/pkg/audio"
	"github.com/rtcaption/engine/pkg/captioning"
	"github.com/rtcaption/engine/pkg/engine"
	"github.com/rtcaption/engine/pkg/logging"
	"github.com/rtcaption/engine/pkg/sink"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := engine.DefaultConfig()
	var captureChannels int
	var verbose bool
	var outputLanguage string

	cmd := &cobra.Command{
		Use:   "captioner",
		Short: "Real-time captioning engine: microphone in, stabilized captions out",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := parseOutputLanguage(outputLanguage)
			if err != nil {
				return err
			}
			cfg.OutputLanguage = lang
			return run(cmd.Context(), cfg, captureChannels, verbose)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&cfg.Segmenter.VADThreshold, "vad-threshold", cfg.Segmenter.VADThreshold, "RMS level above which a frame is considered speech")
	flags.Float64Var(&cfg.Segmenter.EndSilenceS, "vad-end-silence-s", cfg.Segmenter.EndSilenceS, "seconds of silence that close an utterance")
	flags.Float64Var(&cfg.Segmenter.MaxSegmentS, "max-segment-s", cfg.Segmenter.MaxSegmentS, "hard cap on utterance length in seconds")
	flags.Float64Var(&cfg.Segmenter.PreRollS, "pre-roll-s", cfg.Segmenter.PreRollS, "audio retained before detected speech onset")
	flags.Uint64Var(&cfg.Segmenter.MinSpeechMs, "min-speech-ms", cfg.Segmenter.MinSpeechMs, "minimum utterance length before it is captioned")
	flags.Uint64Var(&cfg.Segmenter.ASRStepMs, "asr-step-ms", cfg.Segmenter.ASRStepMs, "minimum gap between partial decodes")
	flags.Float64Var(&cfg.Segmenter.MaxWindowS, "max-window-s", cfg.Segmenter.MaxWindowS, "sliding window used for partial decoding")
	flags.IntVar(&cfg.CommitThreshold, "partial-stable-iters", cfg.CommitThreshold, "consecutive agreeing partials a word must survive before it's committed")

	flags.StringVar(&cfg.Engine, "engine", cfg.Engine, `ASR engine: "local" (whisper.cpp) or "cloud" (HTTP API)`)
	flags.StringVar(&cfg.WhisperModelPath, "whisper-model", "", "path to a whisper.cpp ggml model file (engine=local)")
	flags.StringVar(&cfg.CloudProvider, "cloud-provider", cfg.CloudProvider, `cloud ASR provider: "openai" or "deepgram"`)
	flags.StringVar(&cfg.CloudAPIKey, "cloud-api-key", "", "API key for the cloud ASR backend (falls back to $RTCAPTION_CLOUD_API_KEY)")
	flags.StringVar(&cfg.CloudModel, "cloud-model", "whisper-1", "model name sent to the cloud ASR backend")
	flags.StringVar(&cfg.InputLanguage, "input-language", cfg.InputLanguage, `spoken language hint, or "auto" to detect`)
	flags.StringVar(&outputLanguage, "output-language", "original", `caption output language: "original" or "english"`)

	flags.BoolVar(&cfg.NoOverlay, "no-overlay", cfg.NoOverlay, "disable the local WebSocket caption overlay, run headless")
	flags.StringVar(&cfg.OverlayAddr, "overlay-addr", cfg.OverlayAddr, "address the caption overlay server listens on")

	flags.IntVar(&cfg.AudioQueueSize, "audio-queue-size", cfg.AudioQueueSize, "bounded audio chunk queue depth")
	flags.IntVar(&cfg.SegmentQueueSize, "segment-queue-size", cfg.SegmentQueueSize, "bounded segment event queue depth")
	flags.IntVar(&captureChannels, "capture-channels", 1, "number of input channels reported by the capture device")
	flags.BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}

func run(ctx context.Context, cfg engine.Config, captureChannels int, verbose bool) error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "note: no .env file found, using process environment")
	}
	if cfg.CloudAPIKey == "" {
		cfg.CloudAPIKey = os.Getenv("RTCAPTION_CLOUD_API_KEY")
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	backend, err := buildBackend(cfg)
	if err != nil {
		return err
	}

	sinks := []sink.Sink{sink.NewConsole(os.Stdout)}

	var broadcaster *sink.WebSocketBroadcaster
	var overlaySrv *http.Server
	if !cfg.NoOverlay {
		broadcaster = sink.NewWebSocketBroadcaster()
		sinks = append(sinks, broadcaster)
		overlaySrv = &http.Server{Addr: cfg.OverlayAddr, Handler: broadcaster}
		go func() {
			if err := overlaySrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("overlay server stopped", "error", err)
			}
		}()
		logger.Info("caption overlay listening", "addr", cfg.OverlayAddr)
	}

	sup := engine.New(cfg, backend, sinks, logger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := sup.Start(runCtx); err != nil {
		return fmt.Errorf("captioner: start pipeline: %w", err)
	}

	adapter := audio.NewCaptureAdapter(logger, sup.PushAudio)
	device, err := audio.StartDevice(runCtx, adapter, captureChannels)
	if err != nil {
		cancel()
		sup.StopAndJoin()
		return fmt.Errorf("captioner: start capture device: %w", err)
	}

	logger.Info("captioner started", "engine", cfg.Engine, "input_language", cfg.InputLanguage)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println("\nshutting down...")
	device.Close()
	cancel()
	sup.StopAndJoin()
	if overlaySrv != nil {
		overlaySrv.Close()
	}
	return nil
}

func parseOutputLanguage(s string) (captioning.Language, error) {
	switch strings.ToLower(s) {
	case "original", "auto", "":
		return captioning.LanguageAuto, nil
	case "english", "en":
		return captioning.LanguageEnglish, nil
	default:
		return 0, fmt.Errorf("captioner: unknown --output-language %q (want \"original\" or \"english\")", s)
	}
}

func buildBackend(cfg engine.Config) (asr.Backend, error) {
	switch cfg.Engine {
	case "local":
		if cfg.WhisperModelPath == "" {
			return nil, engine.ErrMissingModelPath
		}
		lang := cfg.InputLanguage
		return asr.NewLocalBackend(cfg.WhisperModelPath, lang)
	case "cloud":
		switch cfg.CloudProvider {
		case "deepgram":
			return asr.NewDeepgramBackend(asr.DeepgramConfig{APIKey: cfg.CloudAPIKey}), nil
		case "openai", "":
			return asr.NewCloudBackend(asr.CloudConfig{
				APIKey: cfg.CloudAPIKey,
				Model:  cfg.CloudModel,
			}), nil
		default:
			return nil, engine.ErrUnknownCloudProvider
		}
	default:
		return nil, engine.ErrUnknownBackend
	}
}
