package shell

import (
	"context"
	"time"

	"devconsole/internal/console"
	"devconsole/internal/logger"
)

// Host plays the part of the application main loop: it owns the goroutine
// that drains the console queue.
type Host struct {
	registry *console.Registry
	tick     time.Duration
}

// NewHost creates a host that drains registry every tick.
func NewHost(registry *console.Registry, tick time.Duration) *Host {
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	return &Host{registry: registry, tick: tick}
}

// Registry returns the console driven by this host.
func (h *Host) Registry() *console.Registry {
	return h.registry
}

// Submit hands a line to the console. Safe from any goroutine.
func (h *Host) Submit(line string) error {
	return h.registry.TryExecuteCommand(line)
}

// Run calls Update on every tick until ctx is done, then drains whatever is
// still queued. The calling goroutine is the owning goroutine.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	logger.Debug("Host loop started", "console", h.registry.Name(), "tick", h.tick)
	for {
		select {
		case <-ctx.Done():
			h.registry.Update()
			logger.Debug("Host loop stopped", "console", h.registry.Name())
			return nil
		case <-ticker.C:
			h.registry.Update()
		}
	}
}
