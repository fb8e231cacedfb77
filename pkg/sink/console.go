package sink

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rtcaption/engine/pkg/captioning"
)

// Console writes captions to a terminal-like writer, overwriting the
// current line for partials and leaving finals as permanent history,
// the way the teacher's agent CLI prints speech/event activity.
type Console struct {
	w  io.Writer
	mu sync.Mutex

	lastPartialLen int
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Publish(_ context.Context, ev captioning.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case captioning.CaptionPartial:
		c.clearLine()
		fmt.Fprintf(c.w, "\r…%s", ev.Text)
		c.lastPartialLen = len(ev.Text) + 1
		return nil
	case captioning.CaptionFinal:
		c.clearLine()
		fmt.Fprintf(c.w, "\r%s\n", ev.Text)
		c.lastPartialLen = 0
		return nil
	case captioning.CaptionReset:
		c.clearLine()
		c.lastPartialLen = 0
		return nil
	default:
		return nil
	}
}

func (c *Console) clearLine() {
	if c.lastPartialLen == 0 {
		return
	}
	fmt.Fprintf(c.w, "\r%s\r", strings.Repeat(" ", c.lastPartialLen))
}

func (c *Console) Close() error { return nil }
