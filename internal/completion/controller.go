package completion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ghostink-ai/ghostink/internal/config"
	"github.com/ghostink-ai/ghostink/internal/editor"
	"github.com/ghostink-ai/ghostink/internal/logging"
	"github.com/ghostink-ai/ghostink/internal/pubsub"
	"github.com/ghostink-ai/ghostink/internal/speech"
	"github.com/ghostink-ai/ghostink/internal/status"
)

// State is a surface's position in the suggestion lifecycle.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSuggested
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSuggested:
		return "suggested"
	}
	return "idle"
}

// Session lifecycle events published to the host UI.
const (
	EventSuggestionShown    pubsub.EventType = "suggestion_shown"
	EventSuggestionAccepted pubsub.EventType = "suggestion_accepted"
	EventSuggestionCleared  pubsub.EventType = "suggestion_cleared"
)

// Controller is the state machine tying the gate, coordinator, and
// renderer together. It is the single writer of all per-surface
// suggestion state: trigger events come in from the host, results come
// in from the coordinator, and every transition happens under one lock.
//
// Per-surface state lives in an explicit registry keyed by surface ID;
// entries are created lazily on first trigger and removed when the host
// reports the surface closed.
type Controller struct {
	cfg      *config.Config
	host     editor.Host
	gate     *Gate
	coord    *Coordinator
	broker   *pubsub.Broker[Session]
	narrator speech.Narrator
	clock    func() time.Time
	schedule func(d time.Duration, f func())

	mu       sync.Mutex
	surfaces map[string]*surfaceState
}

type surfaceState struct {
	phase           State
	session         *Session
	pendingSeq      uint64
	warnedOversized bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock injects the time source used for trigger admission.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithNarrator sets the narrator used to announce accepted suggestions.
func WithNarrator(n speech.Narrator) Option {
	return func(c *Controller) { c.narrator = n }
}

// WithScheduler replaces the timer used to resolve deferred automatic
// triggers. Intended for tests.
func WithScheduler(schedule func(d time.Duration, f func())) Option {
	return func(c *Controller) { c.schedule = schedule }
}

// NewController wires the controller from configuration. The provider is
// the only collaborator doing real I/O.
func NewController(cfg *config.Config, host editor.Host, provider Provider, opts ...Option) *Controller {
	c := &Controller{
		cfg:      cfg,
		host:     host,
		broker:   pubsub.NewBroker[Session](),
		narrator: speech.Noop(),
		clock:    time.Now,
		surfaces: make(map[string]*surfaceState),
	}
	c.schedule = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	for _, opt := range opts {
		opt(c)
	}
	c.gate = NewGate(
		time.Duration(cfg.Completion.MinTriggerIntervalMs)*time.Millisecond,
		time.Duration(cfg.Completion.DebounceMs)*time.Millisecond,
		c.clock,
	)
	c.coord = NewCoordinator(provider, time.Duration(cfg.Provider.TimeoutSeconds)*time.Second)
	return c
}

// Subscribe delivers session lifecycle events to the host UI.
func (c *Controller) Subscribe(ctx context.Context) <-chan pubsub.Event[Session] {
	return c.broker.Subscribe(ctx)
}

// Run pumps coordinator results into the state machine until the context
// is cancelled. Results are applied on this goroutine only, which keeps
// the state machine single-writer with respect to network completions.
func (c *Controller) Run(ctx context.Context) {
	defer logging.RecoverPanic("completion-controller", nil)
	for {
		select {
		case <-ctx.Done():
			c.coord.Shutdown()
			c.broker.Shutdown()
			return
		case res, ok := <-c.coord.Results():
			if !ok {
				return
			}
			c.HandleResult(res)
		}
	}
}

// Trigger asks the controller to consider a completion for the surface.
// Gate rejections are dropped silently; configuration and host
// preconditions are reported back so the caller can notify the user.
func (c *Controller) Trigger(surfaceID string, origin Origin) error {
	if !c.cfg.Enabled {
		return ErrAssistantDisabled
	}
	if !c.host.Ready() {
		return ErrEditorNotReady
	}
	surf, ok := c.host.Surface(surfaceID)
	if !ok {
		return ErrUnknownSurface
	}
	if surf.ReadOnly() {
		// Dispatch is suppressed entirely on read-only surfaces.
		return ErrSurfaceNotWritable
	}
	if origin == OriginAuto && !c.cfg.AutoTrigger {
		slog.Debug("Auto trigger ignored, autoTrigger disabled", "surface", surfaceID)
		return nil
	}

	ev := TriggerEvent{SurfaceID: surfaceID, At: c.clock(), Origin: origin}
	switch c.gate.Admit(ev) {
	case GateRejected:
		return nil
	case GateDeferred:
		c.schedule(c.gate.Delay(), func() {
			if c.gate.Resolve(ev.SurfaceID, ev.At) {
				c.dispatch(ev.SurfaceID)
			}
		})
		return nil
	default:
		c.dispatch(surfaceID)
		return nil
	}
}

// dispatch extracts context and hands the request to the coordinator. A
// fresh trigger invalidates whatever suggestion is still showing.
func (c *Controller) dispatch(surfaceID string) {
	surf, ok := c.host.Surface(surfaceID)
	if !ok || surf.ReadOnly() {
		// The surface went away or turned read-only while the trigger
		// was resting in the gate.
		return
	}

	win := ExtractContext(surf.Text(), surf.CursorOffset(), c.cfg.Context)

	// Sequence assignment and the transition into Pending are one
	// atomic step. A result checked against pendingSeq can then never
	// slip in between a superseding dispatch and its recorded sequence.
	c.mu.Lock()
	st := c.stateLocked(surfaceID)
	c.clearSessionLocked(surfaceID, st, SessionInvalidated)
	st.phase = StatePending
	st.pendingSeq = c.coord.Dispatch(surfaceID, win)
	warnOversized := win.Oversized && !st.warnedOversized
	st.warnedOversized = win.Oversized
	c.mu.Unlock()

	if warnOversized {
		status.Warn(fmt.Sprintf("Large file (%d chars); only context around the cursor is used", win.TotalChars))
	}
	if win.Empty() {
		slog.Debug("Extracted empty context window", "surface", surfaceID)
	}
}

// HandleResult applies one resolved request to the state machine. It is
// the sole consumer of coordinator results. The staleness check compares
// against the sequence recorded at dispatch time under this same lock,
// so no dispatch can interleave between the check and the transition.
func (c *Controller) HandleResult(res Result) {
	c.mu.Lock()
	st, ok := c.surfaces[res.SurfaceID]
	if !ok || st.phase != StatePending || res.Seq != st.pendingSeq {
		c.mu.Unlock()
		// Expected and frequent; not a failure.
		slog.Debug("Stale completion result discarded",
			"surface", res.SurfaceID, "seq", res.Seq)
		return
	}

	surf, haveSurface := c.host.Surface(res.SurfaceID)
	if !haveSurface {
		st.phase = StateIdle
		c.mu.Unlock()
		return
	}

	switch res.Status {
	case StatusSuccess:
		c.showLocked(st, surf, res)
	case StatusTimeout:
		st.phase = StateIdle
		c.mu.Unlock()
		status.Warn("AI completion timed out; trigger again to retry")
	case StatusCancelled:
		st.phase = StateIdle
		c.mu.Unlock()
		slog.Debug("Completion request cancelled", "surface", res.SurfaceID, "seq", res.Seq)
	default:
		st.phase = StateIdle
		c.mu.Unlock()
		slog.Error("Completion request failed", "surface", res.SurfaceID, "error", res.Err)
		status.Error("AI completion failed; see logs for details")
	}
}

// showLocked renders a successful result as a suggestion session. Called
// with c.mu held; releases it.
func (c *Controller) showLocked(st *surfaceState, surf editor.Surface, res Result) {
	if surf.ReadOnly() {
		st.phase = StateIdle
		c.mu.Unlock()
		return
	}

	runes := []rune(surf.Text())
	cursor := surf.CursorOffset()
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	indent := currentIndent(runes[:cursor])
	suffix := string(runes[cursor:])

	preview := BuildPreview(res.Text, indent, suffix, c.cfg.Completion.PreserveIndent)
	if preview == "" {
		st.phase = StateIdle
		c.mu.Unlock()
		slog.Debug("Empty completion, nothing to show", "surface", res.SurfaceID, "seq", res.Seq)
		return
	}

	session := &Session{
		SurfaceID: res.SurfaceID,
		Anchor:    cursor,
		Text:      preview,
		Seq:       res.Seq,
		State:     SessionShown,
	}
	st.session = session
	st.phase = StateSuggested
	shown := *session
	c.mu.Unlock()

	c.broker.Publish(EventSuggestionShown, shown)
}

// Accept commits the surface's suggestion into the document and moves
// the cursor to the end of the inserted text. Calling it without an
// active suggestion is a no-op, which makes a double accept safe.
func (c *Controller) Accept(surfaceID string) error {
	c.mu.Lock()
	st, ok := c.surfaces[surfaceID]
	if !ok || st.phase != StateSuggested || st.session == nil {
		c.mu.Unlock()
		return nil
	}
	session := st.session

	surf, haveSurface := c.host.Surface(surfaceID)
	if !haveSurface {
		st.session = nil
		st.phase = StateIdle
		c.mu.Unlock()
		return ErrUnknownSurface
	}
	if surf.ReadOnly() {
		c.clearSessionLocked(surfaceID, st, SessionInvalidated)
		st.phase = StateIdle
		c.mu.Unlock()
		return ErrSurfaceNotWritable
	}

	if err := surf.InsertText(session.Anchor, session.Text); err != nil {
		c.clearSessionLocked(surfaceID, st, SessionInvalidated)
		st.phase = StateIdle
		c.mu.Unlock()
		return fmt.Errorf("commit suggestion: %w", err)
	}
	surf.SetCursorOffset(session.End())

	session.State = SessionAccepted
	accepted := *session
	st.session = nil
	st.phase = StateIdle
	c.mu.Unlock()

	c.broker.Publish(EventSuggestionAccepted, accepted)
	if c.cfg.Speech.Enabled {
		c.narrator.Announce(accepted.Text)
	}
	slog.Debug("Suggestion accepted", "surface", surfaceID, "seq", accepted.Seq, "chars", len(accepted.Text))
	return nil
}

// Reject discards the surface's suggestion without touching the
// document. Safe to call when nothing is showing.
func (c *Controller) Reject(surfaceID string) error {
	c.mu.Lock()
	st, ok := c.surfaces[surfaceID]
	if !ok {
		c.mu.Unlock()
		return nil
	}
	c.clearSessionLocked(surfaceID, st, SessionRejected)
	st.phase = StateIdle
	c.mu.Unlock()
	return nil
}

// SurfaceSwitched invalidates the old surface's pending and rendered
// state. The newly focused surface starts from whatever state it already
// had; a suggestion never follows focus across surfaces.
func (c *Controller) SurfaceSwitched(oldID, newID string) {
	if oldID == "" || oldID == newID {
		return
	}
	c.invalidate(oldID)
}

// SurfaceClosed drops every trace of the surface: session, sequencing
// state, and gate timestamps. A late result then fails the coordinator's
// currency check.
func (c *Controller) SurfaceClosed(surfaceID string) {
	c.mu.Lock()
	if st, ok := c.surfaces[surfaceID]; ok {
		c.clearSessionLocked(surfaceID, st, SessionInvalidated)
		delete(c.surfaces, surfaceID)
	}
	c.mu.Unlock()

	c.coord.Forget(surfaceID)
	c.gate.Forget(surfaceID)
}

// Invalidate discards pending and rendered state for a surface without
// forgetting it, e.g. when its buffer changed under the suggestion or it
// lost focus.
func (c *Controller) Invalidate(surfaceID string) {
	c.invalidate(surfaceID)
}

func (c *Controller) invalidate(surfaceID string) {
	c.mu.Lock()
	if st, ok := c.surfaces[surfaceID]; ok {
		c.clearSessionLocked(surfaceID, st, SessionInvalidated)
		st.phase = StateIdle
	}
	c.mu.Unlock()

	// The eventual result is discarded as stale or cancelled; this just
	// stops the transport work early.
	c.coord.Cancel(surfaceID)
}

// Phase reports the lifecycle state of a surface.
func (c *Controller) Phase(surfaceID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.surfaces[surfaceID]; ok {
		return st.phase
	}
	return StateIdle
}

// ActiveSession returns the currently rendered session for a surface.
func (c *Controller) ActiveSession(surfaceID string) (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.surfaces[surfaceID]; ok && st.session != nil {
		return *st.session, true
	}
	return Session{}, false
}

func (c *Controller) stateLocked(surfaceID string) *surfaceState {
	st, ok := c.surfaces[surfaceID]
	if !ok {
		st = &surfaceState{phase: StateIdle}
		c.surfaces[surfaceID] = st
	}
	return st
}

// clearSessionLocked retires the active session, if any, publishing a
// cleared event with the reason. Never mutates the document.
func (c *Controller) clearSessionLocked(surfaceID string, st *surfaceState, reason SessionState) {
	if st.session == nil {
		return
	}
	st.session.State = reason
	cleared := *st.session
	st.session = nil
	c.broker.Publish(EventSuggestionCleared, cleared)
	slog.Debug("Suggestion cleared", "surface", surfaceID, "reason", reason)
}
