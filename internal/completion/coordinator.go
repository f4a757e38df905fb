package completion

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Provider produces one completion for a context window. Implementations
// must honor context cancellation and deadlines.
type Provider interface {
	Complete(ctx context.Context, win ContextWindow) (string, error)
}

// Coordinator owns request sequencing. Every dispatch gets the next
// sequence number for its surface; a result whose number is below the
// surface's latest at arrival is stale and must be discarded by the
// consumer. Superseding dispatches are allowed while an earlier request
// is still in flight; the sequence check, not an exclusion lock, is what
// keeps results correct.
type Coordinator struct {
	provider Provider
	timeout  time.Duration
	results  chan Result
	done     chan struct{}
	doneOnce sync.Once

	mu       sync.Mutex
	surfaces map[string]*surfaceRequests
}

type surfaceRequests struct {
	latest uint64
	cancel context.CancelFunc
}

func NewCoordinator(provider Provider, timeout time.Duration) *Coordinator {
	return &Coordinator{
		provider: provider,
		timeout:  timeout,
		results:  make(chan Result, 16),
		done:     make(chan struct{}),
		surfaces: make(map[string]*surfaceRequests),
	}
}

// Results is the stream of resolved requests. The lifecycle controller
// is its sole consumer.
func (c *Coordinator) Results() <-chan Result { return c.results }

// Dispatch issues a request for the surface and returns the assigned
// sequence number. A still in-flight request on the same surface is
// cancelled at the transport level; its result would be discarded as
// stale regardless, cancellation just stops paying for it.
func (c *Coordinator) Dispatch(surfaceID string, win ContextWindow) uint64 {
	c.mu.Lock()
	sr := c.surfaces[surfaceID]
	if sr == nil {
		sr = &surfaceRequests{}
		c.surfaces[surfaceID] = sr
	}
	if sr.cancel != nil {
		sr.cancel()
	}
	sr.latest++
	seq := sr.latest
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	sr.cancel = cancel
	c.mu.Unlock()

	go func() {
		defer cancel()
		text, err := c.provider.Complete(ctx, win)
		res := Result{SurfaceID: surfaceID, Seq: seq, Status: StatusSuccess, Text: text}
		if err != nil {
			res.Text = ""
			res.Err = err
			switch {
			case errors.Is(err, context.DeadlineExceeded):
				res.Status = StatusTimeout
			case errors.Is(err, context.Canceled):
				res.Status = StatusCancelled
			default:
				res.Status = StatusProviderError
			}
		}
		select {
		case c.results <- res:
		case <-c.done:
		}
	}()

	slog.Debug("Completion request dispatched", "surface", surfaceID, "seq", seq)
	return seq
}

// Latest returns the newest sequence number dispatched for a surface.
func (c *Coordinator) Latest(surfaceID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sr := c.surfaces[surfaceID]; sr != nil {
		return sr.latest
	}
	return 0
}

// IsCurrent reports whether seq is the newest dispatch for the surface.
// A result for an untracked surface is never current.
func (c *Coordinator) IsCurrent(surfaceID string, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	sr := c.surfaces[surfaceID]
	return sr != nil && sr.latest == seq
}

// Cancel aborts any in-flight request for the surface but keeps its
// sequence counter, so a later dispatch still supersedes everything that
// came before.
func (c *Coordinator) Cancel(surfaceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sr := c.surfaces[surfaceID]; sr != nil && sr.cancel != nil {
		sr.cancel()
		sr.cancel = nil
	}
}

// Forget cancels in-flight work and drops all sequencing state for a
// closed surface. Any late result then fails the IsCurrent check.
func (c *Coordinator) Forget(surfaceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sr := c.surfaces[surfaceID]; sr != nil {
		if sr.cancel != nil {
			sr.cancel()
		}
		delete(c.surfaces, surfaceID)
	}
}

// Shutdown releases result-producing goroutines. Pending results are
// dropped.
func (c *Coordinator) Shutdown() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}
