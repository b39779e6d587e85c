// Package poll provides the single refresh-loop abstraction for the
// client's freshness timers. Every periodic refetch in the app goes
// through it, so there is exactly one place where cleanup happens and
// no view can leak a timer.
package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Func is one refresh pass. Errors are logged and the loop continues;
// a poll pass is best-effort by design.
type Func func(ctx context.Context) error

// Poller runs named refresh loops and stops them all on Close.
type Poller struct {
	logger *slog.Logger

	mu     sync.Mutex
	wg     sync.WaitGroup
	stops  []context.CancelFunc
	closed bool
}

// New creates a Poller.
func New(logger *slog.Logger) *Poller {
	return &Poller{logger: logger}
}

// Start runs fn immediately and then on every interval tick until the
// returned stop function is called, Close is called, or ctx ends.
func (p *Poller) Start(ctx context.Context, name string, interval time.Duration, fn Func) (stop func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return func() {}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.stops = append(p.stops, cancel)
	p.wg.Add(1)

	go p.run(loopCtx, name, interval, fn)

	var once sync.Once

	return func() { once.Do(cancel) }
}

func (p *Poller) run(ctx context.Context, name string, interval time.Duration, fn Func) {
	defer p.wg.Done()

	p.logger.Debug("Poll loop started", slog.String("name", name), slog.Duration("interval", interval))

	if err := fn(ctx); err != nil && ctx.Err() == nil {
		p.logger.Warn("Poll pass failed", slog.String("name", name), slog.Any("error", err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Poll loop stopped", slog.String("name", name))

			return
		case <-ticker.C:
			if err := fn(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn("Poll pass failed", slog.String("name", name), slog.Any("error", err))
			}
		}
	}
}

// Close stops every loop and waits for them to finish.
func (p *Poller) Close() {
	p.mu.Lock()
	p.closed = true
	stops := p.stops
	p.stops = nil
	p.mu.Unlock()

	for _, cancel := range stops {
		cancel()
	}
	p.wg.Wait()
}
