// Package sink delivers caption events to their final destination: a
// terminal, or a local WebSocket overlay.
package sink

import (
	"context"

	"github.com/rtcaption/engine/pkg/captioning"
)

// Sink is the contract a caption destination satisfies. Publish must
// not block indefinitely; sinks that fan out to slow consumers (a
// WebSocket client that stopped reading) are responsible for their own
// internal back-pressure handling.
type Sink interface {
	Publish(ctx context.Context, ev captioning.Event) error
	Close() error
}
