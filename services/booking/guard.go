package booking

import (
	"sync"
	"sync/atomic"
)

// SubmissionGuard is a single-boolean latch around one network-side-effecting
// operation. A second attempt while the first is in flight is rejected, not
// queued; the latch is released in both success and failure paths so the
// user can re-trigger. It deliberately is not a counting semaphore.
type SubmissionGuard struct {
	inFlight atomic.Bool
}

// TryAcquire latches the guard, returning false when an attempt is already
// in flight.
func (g *SubmissionGuard) TryAcquire() bool {
	return g.inFlight.CompareAndSwap(false, true)
}

// Release opens the guard for the next attempt.
func (g *SubmissionGuard) Release() {
	g.inFlight.Store(false)
}

// InFlight reports whether an attempt currently holds the latch.
func (g *SubmissionGuard) InFlight() bool {
	return g.inFlight.Load()
}

// sessionGuards bundles the two independent per-session latches: one for
// appointment creation, one for payment initialization. Payment is gated on
// a settled, successful creation, but each latch guards only its own
// operation.
type sessionGuards struct {
	Booking SubmissionGuard
	Payment SubmissionGuard
}

// guardRegistry hands out per-session guard pairs. Guards are plain session
// state owned by the orchestrator instance rather than module-level flags,
// so independent sessions (and tests) never share a latch.
type guardRegistry struct {
	mu     sync.Mutex
	guards map[string]*sessionGuards
}

func newGuardRegistry() *guardRegistry {
	return &guardRegistry{guards: make(map[string]*sessionGuards)}
}

// forSession returns the guard pair for a session, creating it on first use.
func (r *guardRegistry) forSession(sessionID string) *sessionGuards {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guards[sessionID]
	if !ok {
		g = &sessionGuards{}
		r.guards[sessionID] = g
	}
	return g
}

// drop forgets a session's guards once the session ends.
func (r *guardRegistry) drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.guards, sessionID)
}
