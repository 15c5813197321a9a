// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace owns the client-side view of the user's documents:
// the cached collection, the currently focused record, and the poll
// sessions that reconcile both against the service's asynchronous
// analysis. All mutations go through Workspace methods; readers only
// ever see snapshots.
package workspace

import (
	"context"
	"fmt"
	"sync"

	"github.com/Marbrgr/DocProc/internal/api"
	"github.com/Marbrgr/DocProc/internal/poll"
	"github.com/Marbrgr/DocProc/pkg/types"
)

// Workspace is the single source of truth the presentation layer reads.
//
// Lock discipline: w.mu guards docs and focused. Poller methods are
// never called with w.mu held — the poller's delivery path acquires
// w.mu via applyPollResult, so holding w.mu across a Cancel would
// deadlock.
type Workspace struct {
	client *api.Client
	poller *poll.Controller

	mu      sync.Mutex
	docs    []types.DocumentRecord
	focused *types.DocumentRecord
}

// New builds a workspace around the resource client. Poll completions
// feed straight back into the cache.
func New(client *api.Client, pollCfg types.PollConfig) *Workspace {
	w := &Workspace{client: client}
	w.poller = poll.New(pollCfg, client.GetDocument, w.applyPollResult)
	return w
}

// LoadAll replaces the entire collection from the list endpoint. This is
// a full authoritative replace, not a merge: list order and membership
// come from the server at that moment. A replace may transiently revert
// a poll patch the server's list has not observed yet; the active poll
// session re-applies it on its next completion, so this is an accepted
// eventual-consistency tradeoff rather than a bug.
func (w *Workspace) LoadAll(ctx context.Context) error {
	docs, err := w.client.ListDocuments(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs = docs
	return nil
}

// Focus fetches one document, makes it the focused record, and — when
// its analysis is still pending — ensures a poll session is running for
// it. Moving focus to a different document cancels the previous one's
// session; re-focusing the same document does not restart its session
// (that would hand it a fresh attempt budget). The returned channel
// carries the session's terminal outcome and is nil when no session is
// running.
func (w *Workspace) Focus(ctx context.Context, id string) (types.DocumentRecord, <-chan poll.Outcome, error) {
	rec, err := w.client.GetDocument(ctx, id)
	if err != nil {
		return types.DocumentRecord{}, nil, err
	}

	w.mu.Lock()
	prev := ""
	if w.focused != nil && w.focused.ID != id {
		prev = w.focused.ID
	}
	w.focused = &rec
	// Keep the list entry in step with the fresher detail fetch so list
	// and detail never disagree.
	if i := w.indexOf(id); i >= 0 {
		w.docs[i] = rec
	}
	w.mu.Unlock()

	if prev != "" {
		w.poller.Cancel(prev)
	}

	if !rec.AnalysisPending() {
		// Already classified: terminal, no re-poll.
		return rec, nil, nil
	}
	if w.poller.Active(id) {
		return rec, nil, nil
	}
	return rec, w.poller.Start(id), nil
}

// Unfocus clears the focused record and cancels its poll session.
func (w *Workspace) Unfocus() {
	w.mu.Lock()
	var id string
	if w.focused != nil {
		id = w.focused.ID
	}
	w.focused = nil
	w.mu.Unlock()

	if id != "" {
		w.poller.Cancel(id)
	}
}

// InsertOrReplace merges one record into the collection: append when the
// id is unseen, replace in place otherwise.
func (w *Workspace) InsertOrReplace(rec types.DocumentRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := w.indexOf(rec.ID); i >= 0 {
		w.docs[i] = rec
		return
	}
	w.docs = append(w.docs, rec)
}

// Remove deletes the document on the server, then removes it locally.
// A failed delete leaves the collection untouched. The local removal is
// synchronous: it does not wait for a later LoadAll to agree.
func (w *Workspace) Remove(ctx context.Context, id string) (types.DeleteResult, error) {
	result, err := w.client.DeleteDocument(ctx, id)
	if err != nil {
		return types.DeleteResult{}, err
	}

	// Cancel before mutating so no stale poll patch lands afterwards.
	w.poller.Cancel(id)

	w.mu.Lock()
	defer w.mu.Unlock()
	if i := w.indexOf(id); i >= 0 {
		w.docs = append(w.docs[:i], w.docs[i+1:]...)
	}
	if w.focused != nil && w.focused.ID == id {
		w.focused = nil
	}
	return result, nil
}

// applyPollResult is the poll controller's delivery sink. It patches the
// matching list entry and the focused snapshot under one lock, so no
// reader ever observes the two disagreeing.
func (w *Workspace) applyPollResult(rec types.DocumentRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := w.indexOf(rec.ID); i >= 0 {
		w.docs[i] = rec
	}
	if w.focused != nil && w.focused.ID == rec.ID {
		w.focused = &rec
	}
}

// Snapshot returns a copy of the collection in its current order.
func (w *Workspace) Snapshot() []types.DocumentRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]types.DocumentRecord, len(w.docs))
	copy(out, w.docs)
	return out
}

// Focused returns the focused record, if any.
func (w *Workspace) Focused() (types.DocumentRecord, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.focused == nil {
		return types.DocumentRecord{}, false
	}
	return *w.focused, true
}

// Get returns the cached record for id.
func (w *Workspace) Get(id string) (types.DocumentRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := w.indexOf(id); i >= 0 {
		return w.docs[i], nil
	}
	return types.DocumentRecord{}, fmt.Errorf("document %s not in workspace", id)
}

// PollStatuses exposes the poll controller's per-document status.
func (w *Workspace) PollStatuses() map[string]poll.Status {
	return w.poller.Statuses()
}

// Close cancels all poll sessions.
func (w *Workspace) Close() {
	w.poller.CancelAll()
}

// indexOf returns the position of id in docs, or -1. Callers hold w.mu.
func (w *Workspace) indexOf(id string) int {
	for i := range w.docs {
		if w.docs[i].ID == id {
			return i
		}
	}
	return -1
}
