// Package debounce coalesces bursts of change events into a single
// deferred action.
//
// The persister implements trailing-edge debounce with restart: every
// Request cancels any pending fire and re-arms the full quiescence
// window, so only the last call in a burst produces an execution. Callers
// must pass a closure that reads current state at fire time, not at
// schedule time.
package debounce

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/prefsync/pkg/logging"
)

// DefaultWindow is the canonical quiescence window.
const DefaultWindow = 500 * time.Millisecond

// Persister defers an action until a quiescence window has elapsed since
// the most recent Request. One mutex guards all arm/disarm transitions on
// the underlying timer; a fire can never be lost or double-scheduled.
type Persister struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	action func()

	// gen invalidates timer fires that lost the race with a re-arm or
	// a shutdown.
	gen uint64

	// runMu serializes action execution; fires are strictly sequential.
	runMu sync.Mutex

	closed bool
	logger zerolog.Logger
}

// New creates a persister with the given quiescence window. A
// non-positive window falls back to DefaultWindow.
func New(window time.Duration) *Persister {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Persister{
		window: window,
		logger: logging.GetLogger("debounce"),
	}
}

// Window returns the configured quiescence window.
func (p *Persister) Window() time.Duration {
	return p.window
}

// Request schedules action to run once after the quiescence window has
// elapsed since the last Request. A pending fire is cancelled and the
// full window restarts; the most recently registered action is the one
// that runs. Calling Request after Shutdown is a logged no-op.
func (p *Persister) Request(action func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.logger.Warn().Msg("Request after shutdown ignored")
		return
	}

	if p.timer != nil {
		p.timer.Stop()
	}

	p.gen++
	p.action = action

	gen := p.gen
	p.timer = time.AfterFunc(p.window, func() {
		p.fire(gen)
	})
}

// Pending reports whether a fire is currently scheduled.
func (p *Persister) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.action != nil && !p.closed
}

// Shutdown cancels any pending fire without executing it and marks the
// persister unusable. It is idempotent.
func (p *Persister) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.closed = true
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.action = nil
}

// fire runs the registered action if this timer generation is still
// current. The lock is released before the action runs, and regardless of
// its outcome, so a panicking action cannot wedge the debounce state.
func (p *Persister) fire(gen uint64) {
	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		return
	}
	action := p.action
	p.action = nil
	p.timer = nil
	p.mu.Unlock()

	if action != nil {
		p.runMu.Lock()
		defer p.runMu.Unlock()
		action()
	}
}
