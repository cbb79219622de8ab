package button

import (
	"context"
	"time"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/debug"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/hw/gpio"
)

// Handler is invoked synchronously on the watcher goroutine for each
// accepted (debounced) press. It must return quickly and must never
// perform the capture/analysis/speech calls itself.
type Handler func()

// Config holds the input wiring and timing for the push button.
type Config struct {
	Pin          int
	Debounce     time.Duration // quiet window after an accepted press
	PollInterval time.Duration // input sampling interval
}

// Watcher samples a pull-up button input and reports debounced
// falling edges (High -> Low = pressed) to a registered handler.
type Watcher struct {
	gpio    gpio.Driver
	cfg     Config
	handler Handler
}

// NewWatcher creates a button watcher. The pin is configured as input
// with the internal pull-up, so the line idles High and a press pulls
// it Low.
func NewWatcher(g gpio.Driver, cfg Config) *Watcher {
	_ = g.SetupInput(cfg.Pin, true)

	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Millisecond
	}

	return &Watcher{
		gpio: g,
		cfg:  cfg,
	}
}

// OnPress registers the handler invoked on each accepted press.
// Must be called before Watch.
func (w *Watcher) OnPress(h Handler) {
	w.handler = h
}

// Watch samples the input until ctx is cancelled. The first sample
// seeds the previous level so a line that is already Low at startup
// does not count as an edge. Transitions within the debounce window
// after an accepted press are ignored.
func (w *Watcher) Watch(ctx context.Context) error {
	prev, err := w.gpio.Read(w.cfg.Pin)
	if err != nil {
		return err
	}

	var lastAccepted time.Time

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			debug.Verbose("Button: watch stopped")
			return ctx.Err()
		case <-ticker.C:
		}

		level, err := w.gpio.Read(w.cfg.Pin)
		if err != nil {
			debug.Error(err)
			continue
		}

		falling := prev == gpio.High && level == gpio.Low
		prev = level
		if !falling {
			continue
		}

		now := time.Now()
		if !lastAccepted.IsZero() && now.Sub(lastAccepted) < w.cfg.Debounce {
			debug.Trace("Button: edge on pin %d within debounce window, ignored", w.cfg.Pin)
			continue
		}
		lastAccepted = now

		debug.Live("Button: press detected on pin %d", w.cfg.Pin)
		if w.handler != nil {
			w.handler()
		}
	}
}
