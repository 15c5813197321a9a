// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package poll bridges the gap between "upload acknowledged" and
// "asynchronous analysis materialized". Each watched document gets a
// bounded, cancellable retry loop that re-fetches the record until its
// classification arrives or the attempt budget runs out.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/Marbrgr/DocProc/pkg/types"
)

// Status is the lifecycle state of one poll session.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPolling   Status = "polling"
	StatusCompleted Status = "completed"
	StatusTimedOut  Status = "timed_out"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusTimedOut || s == StatusCancelled
}

// Outcome is delivered exactly once per session when it reaches a
// terminal state. Record is only set for completed sessions.
type Outcome struct {
	DocumentID string
	Status     Status
	Attempts   int
	Record     types.DocumentRecord
}

// FetchFunc re-fetches one document from the service.
type FetchFunc func(ctx context.Context, id string) (types.DocumentRecord, error)

// DeliverFunc receives the refreshed record when a session completes.
// It runs with the controller lock held, so implementations must not
// call back into the controller.
type DeliverFunc func(record types.DocumentRecord)

// session tracks one document's poll loop. The generation token makes
// cancellation airtight: timer callbacks and in-flight fetches carry the
// generation they were scheduled under, and any callback whose
// generation no longer matches the live session is a guaranteed no-op.
type session struct {
	id       string
	gen      uint64
	status   Status
	attempts int
	timer    *time.Timer
	done     chan Outcome
}

// Controller runs at most one active poll session per document id.
type Controller struct {
	cfg     types.PollConfig
	fetch   FetchFunc
	deliver DeliverFunc

	mu       sync.Mutex
	gen      uint64
	sessions map[string]*session
}

// New builds a controller. deliver may be nil when no one consumes
// completions (e.g. a bare --wait loop that reads the outcome instead).
func New(cfg types.PollConfig, fetch FetchFunc, deliver DeliverFunc) *Controller {
	return &Controller{
		cfg:      cfg,
		fetch:    fetch,
		deliver:  deliver,
		sessions: make(map[string]*session),
	}
}

// Start begins a poll session for id after the configured initial delay.
// An existing active session for the same id is cancelled first; the
// new session starts with a fresh attempt budget.
func (c *Controller) Start(id string) <-chan Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.sessions[id]; ok && !prev.status.Terminal() {
		c.terminate(prev, StatusCancelled)
	}

	c.gen++
	s := &session{
		id:     id,
		gen:    c.gen,
		status: StatusScheduled,
		done:   make(chan Outcome, 1),
	}
	c.sessions[id] = s

	gen := s.gen
	s.timer = time.AfterFunc(c.cfg.InitialDelay, func() { c.tick(id, gen) })
	return s.done
}

// Active reports whether id has a non-terminal session. Callers use it
// to avoid restarting (and thereby re-budgeting) a poll that is already
// under way.
func (c *Controller) Active(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[id]
	return ok && !s.status.Terminal()
}

// Statuses returns the current status per document id with a live
// session. Terminal sessions are pruned from the controller; their
// outcome is observable only on the channel Start returned.
func (c *Controller) Statuses() map[string]Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]Status, len(c.sessions))
	for id, s := range c.sessions {
		out[id] = s.status
	}
	return out
}

// Cancel stops the session for id, if any. When Cancel returns, no
// delivery for that id will be observed: completions are serialized
// under the controller lock, so an in-flight fetch either delivered
// before Cancel acquired the lock or will see the cancelled state and
// drop its result.
func (c *Controller) Cancel(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[id]; ok && !s.status.Terminal() {
		c.terminate(s, StatusCancelled)
	}
}

// CancelAll stops every active session (logout, shutdown).
func (c *Controller) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.sessions {
		if !s.status.Terminal() {
			c.terminate(s, StatusCancelled)
		}
	}
}

// terminate moves s to a terminal state, signals its outcome, and drops
// it from the session map so the controller's footprint stays bounded by
// the number of live sessions. Callers hold c.mu.
func (c *Controller) terminate(s *session, status Status) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.status = status
	s.done <- Outcome{DocumentID: s.id, Status: status, Attempts: s.attempts}
	delete(c.sessions, s.id)
}

// tick runs one poll attempt for the session scheduled under gen.
func (c *Controller) tick(id string, gen uint64) {
	c.mu.Lock()
	s, ok := c.sessions[id]
	if !ok || s.gen != gen || s.status.Terminal() {
		// Stale timer from a cancelled or replaced session.
		c.mu.Unlock()
		return
	}
	s.status = StatusPolling
	c.mu.Unlock()

	// The fetch happens outside the lock; the generation re-check below
	// discards its result if the session was cancelled meanwhile.
	record, err := c.fetch(context.Background(), id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.sessions[id]; !ok || cur.gen != gen || cur.status.Terminal() {
		return
	}

	s.attempts++

	if err == nil && !record.AnalysisPending() {
		if s.timer != nil {
			s.timer.Stop()
		}
		s.status = StatusCompleted
		if c.deliver != nil {
			c.deliver(record)
		}
		s.done <- Outcome{DocumentID: id, Status: StatusCompleted, Attempts: s.attempts, Record: record}
		delete(c.sessions, id)
		return
	}

	// A fetch failure is soft: it consumes an attempt and nothing else.
	if s.attempts >= c.cfg.MaxAttempts {
		s.status = StatusTimedOut
		s.done <- Outcome{DocumentID: id, Status: StatusTimedOut, Attempts: s.attempts}
		delete(c.sessions, id)
		return
	}

	s.status = StatusPolling
	s.timer = time.AfterFunc(c.cfg.Interval, func() { c.tick(id, gen) })
}
