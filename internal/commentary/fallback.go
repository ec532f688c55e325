package commentary

import (
	"context"
	"log/slog"
	"time"
)

// Fallback wraps an Advisor so that it never fails. Errors, timeouts and
// empty replies all become FallbackMessage.
type Fallback struct {
	next    Advisor
	timeout time.Duration
	logger  *slog.Logger
}

// NewFallback wraps next. A zero timeout leaves the caller's deadline alone.
func NewFallback(next Advisor, timeout time.Duration, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{next: next, timeout: timeout, logger: logger}
}

// Advise returns the wrapped advisor's text, or FallbackMessage.
// The error is always nil.
func (f *Fallback) Advise(ctx context.Context, snap Snapshot) (string, error) {
	if f.next == nil {
		return FallbackMessage, nil
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	text, err := f.next.Advise(ctx, snap)
	if err != nil {
		f.logger.Warn("commentary unavailable", "error", err)
		return FallbackMessage, nil
	}
	if text == "" {
		return FallbackMessage, nil
	}
	return text, nil
}

// AdviseAsync runs Advise in its own goroutine. The returned channel
// receives exactly one message and is then closed, so a caller may read
// it whenever convenient or ignore it entirely.
func (f *Fallback) AdviseAsync(ctx context.Context, snap Snapshot) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		text, _ := f.Advise(ctx, snap)
		out <- text
	}()
	return out
}

// FromConfig picks the remote client when configured and the static
// advisor otherwise, wrapped in a Fallback either way.
func FromConfig(cfg Config, logger *slog.Logger) *Fallback {
	var next Advisor = Static{}
	if cfg.Enabled() {
		next = NewResponsesClient(cfg, nil)
	}
	return NewFallback(next, cfg.Timeout, logger)
}
