package completion

import (
	"log/slog"
	"sync"
	"time"
)

// GateDecision is the outcome of offering a trigger to the gate.
type GateDecision int

const (
	// GateAdmitted means the trigger may dispatch now.
	GateAdmitted GateDecision = iota
	// GateRejected means the trigger fired inside the minimum interval
	// and is dropped. Rejected triggers are never queued.
	GateRejected
	// GateDeferred means an automatic trigger was absorbed for
	// coalescing; call Resolve after Delay has elapsed.
	GateDeferred
)

// Gate is the admission filter between trigger events and request
// dispatch. It enforces a minimum interval between dispatches per
// surface and coalesces rapid automatic triggers so only the last of a
// run goes through. Time is read through an injected clock so the gate
// is testable without real delays.
type Gate struct {
	mu           sync.Mutex
	now          func() time.Time
	minInterval  time.Duration
	delay        time.Duration
	lastDispatch map[string]time.Time
	pending      map[string]time.Time
}

// NewGate builds a gate. A nil clock falls back to time.Now.
func NewGate(minInterval, delay time.Duration, clock func() time.Time) *Gate {
	if clock == nil {
		clock = time.Now
	}
	return &Gate{
		now:          clock,
		minInterval:  minInterval,
		delay:        delay,
		lastDispatch: make(map[string]time.Time),
		pending:      make(map[string]time.Time),
	}
}

// Delay is how long a deferred automatic trigger must rest before
// Resolve may admit it.
func (g *Gate) Delay() time.Duration { return g.delay }

// Admit decides whether the event may dispatch. Explicit triggers are
// decided immediately against the minimum interval; automatic triggers
// are deferred for coalescing when a debounce delay is configured.
func (g *Gate) Admit(ev TriggerEvent) GateDecision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ev.Origin == OriginAuto && g.delay > 0 {
		g.pending[ev.SurfaceID] = ev.At
		return GateDeferred
	}
	return g.admitLocked(ev.SurfaceID, ev.At)
}

// Resolve finishes a deferred automatic trigger identified by its event
// time. It admits only when no newer automatic trigger superseded it on
// the same surface and the minimum interval has elapsed by now.
func (g *Gate) Resolve(surfaceID string, at time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	pend, ok := g.pending[surfaceID]
	if !ok || !pend.Equal(at) {
		return false
	}
	delete(g.pending, surfaceID)
	return g.admitLocked(surfaceID, g.now()) == GateAdmitted
}

// Forget drops all gate state for a surface.
func (g *Gate) Forget(surfaceID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.lastDispatch, surfaceID)
	delete(g.pending, surfaceID)
}

func (g *Gate) admitLocked(surfaceID string, at time.Time) GateDecision {
	if last, ok := g.lastDispatch[surfaceID]; ok && at.Sub(last) < g.minInterval {
		slog.Debug("Trigger rejected by gate",
			"surface", surfaceID,
			"elapsed", at.Sub(last),
			"min_interval", g.minInterval)
		return GateRejected
	}
	g.lastDispatch[surfaceID] = at
	return GateAdmitted
}
