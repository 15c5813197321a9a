// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package poll

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marbrgr/DocProc/pkg/types"
)

// fastCfg keeps the timers tiny so tests never sleep for real.
func fastCfg(maxAttempts int) types.PollConfig {
	return types.PollConfig{
		InitialDelay: 1 * time.Millisecond,
		Interval:     1 * time.Millisecond,
		MaxAttempts:  maxAttempts,
	}
}

func pendingRecord(id string) types.DocumentRecord {
	return types.DocumentRecord{ID: id, FileName: "a.pdf", AIDocumentType: types.AITypeUnknown}
}

func classifiedRecord(id string) types.DocumentRecord {
	return types.DocumentRecord{ID: id, FileName: "a.pdf", AIDocumentType: "invoice", AIConfidence: 0.93}
}

func waitOutcome(t *testing.T, ch <-chan Outcome) Outcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for poll outcome")
		return Outcome{}
	}
}

func TestController_CompletesWhenAnalysisArrives(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, id string) (types.DocumentRecord, error) {
		// Classification materializes on the third fetch.
		if atomic.AddInt32(&calls, 1) < 3 {
			return pendingRecord(id), nil
		}
		return classifiedRecord(id), nil
	}

	var delivered []types.DocumentRecord
	var mu sync.Mutex
	c := New(fastCfg(10), fetch, func(rec types.DocumentRecord) {
		mu.Lock()
		delivered = append(delivered, rec)
		mu.Unlock()
	})

	outcome := waitOutcome(t, c.Start("doc-1"))
	assert.Equal(t, StatusCompleted, outcome.Status)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Equal(t, "invoice", outcome.Record.AIDocumentType)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 1)
	assert.Equal(t, "doc-1", delivered[0].ID)

	// Completed sessions issue no further fetches.
	before := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, atomic.LoadInt32(&calls))
}

func TestController_TimesOutAfterBudget(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, id string) (types.DocumentRecord, error) {
		atomic.AddInt32(&calls, 1)
		return pendingRecord(id), nil
	}

	var delivered int32
	c := New(fastCfg(4), fetch, func(types.DocumentRecord) { atomic.AddInt32(&delivered, 1) })

	outcome := waitOutcome(t, c.Start("doc-1"))
	assert.Equal(t, StatusTimedOut, outcome.Status)
	assert.Equal(t, 4, outcome.Attempts)
	assert.Equal(t, int32(0), atomic.LoadInt32(&delivered), "timeout delivers no record")

	// Terminal means terminal: no network calls after exhaustion.
	before := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, atomic.LoadInt32(&calls))
	assert.False(t, c.Active("doc-1"))
}

func TestController_TerminalSessionsArePruned(t *testing.T) {
	fetch := func(_ context.Context, id string) (types.DocumentRecord, error) {
		return classifiedRecord(id), nil
	}
	c := New(fastCfg(10), fetch, nil)

	// A long-lived controller must not accumulate an entry for every
	// document ever watched.
	for i := 0; i < 50; i++ {
		waitOutcome(t, c.Start("doc-1"))
	}
	waitOutcome(t, c.Start("doc-2"))
	c.Cancel("doc-3") // no session: no-op

	assert.Empty(t, c.Statuses())

	ch := c.Start("doc-4")
	c.Cancel("doc-4")
	assert.Equal(t, StatusCancelled, waitOutcome(t, ch).Status)
	assert.Empty(t, c.Statuses())
}

func TestController_FetchFailuresAreSoftButCounted(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, id string) (types.DocumentRecord, error) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			return types.DocumentRecord{}, errors.New("connection reset")
		}
		return classifiedRecord(id), nil
	}

	c := New(fastCfg(10), fetch, nil)

	outcome := waitOutcome(t, c.Start("doc-1"))
	assert.Equal(t, StatusCompleted, outcome.Status)
	// Two failed attempts plus the successful one.
	assert.Equal(t, 3, outcome.Attempts)
}

func TestController_AllFailuresStillTerminate(t *testing.T) {
	fetch := func(context.Context, string) (types.DocumentRecord, error) {
		return types.DocumentRecord{}, errors.New("unreachable")
	}

	c := New(fastCfg(3), fetch, nil)
	outcome := waitOutcome(t, c.Start("doc-1"))
	assert.Equal(t, StatusTimedOut, outcome.Status)
	assert.Equal(t, 3, outcome.Attempts)
}

func TestController_CancelDiscardsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	fetch := func(_ context.Context, id string) (types.DocumentRecord, error) {
		once.Do(func() { close(entered) })
		<-release
		return classifiedRecord(id), nil
	}

	var delivered int32
	c := New(fastCfg(10), fetch, func(types.DocumentRecord) { atomic.AddInt32(&delivered, 1) })

	ch := c.Start("doc-1")

	// Wait until a fetch is actually in flight, then cancel under it.
	<-entered
	c.Cancel("doc-1")

	outcome := waitOutcome(t, ch)
	assert.Equal(t, StatusCancelled, outcome.Status)

	// Let the stalled fetch finish; its result must be discarded.
	close(release)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&delivered))
	assert.False(t, c.Active("doc-1"))
}

func TestController_CancelBeforeFirstFetch(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, id string) (types.DocumentRecord, error) {
		atomic.AddInt32(&calls, 1)
		return classifiedRecord(id), nil
	}

	cfg := types.PollConfig{InitialDelay: 1 * time.Hour, Interval: 1 * time.Hour, MaxAttempts: 5}
	c := New(cfg, fetch, nil)

	ch := c.Start("doc-1")
	c.Cancel("doc-1")

	outcome := waitOutcome(t, ch)
	assert.Equal(t, StatusCancelled, outcome.Status)
	assert.Equal(t, 0, outcome.Attempts)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestController_RestartCancelsPriorSession(t *testing.T) {
	fetch := func(_ context.Context, id string) (types.DocumentRecord, error) {
		return pendingRecord(id), nil
	}

	c := New(fastCfg(100), fetch, nil)

	first := c.Start("doc-1")
	second := c.Start("doc-1")

	outcome := waitOutcome(t, first)
	assert.Equal(t, StatusCancelled, outcome.Status)

	// The replacement session is the live one.
	assert.True(t, c.Active("doc-1"))
	c.Cancel("doc-1")
	assert.Equal(t, StatusCancelled, waitOutcome(t, second).Status)
}

func TestController_IndependentDocuments(t *testing.T) {
	fetch := func(_ context.Context, id string) (types.DocumentRecord, error) {
		if id == "done" {
			return classifiedRecord(id), nil
		}
		return pendingRecord(id), nil
	}

	c := New(fastCfg(2), fetch, nil)

	doneCh := c.Start("done")
	stuckCh := c.Start("stuck")

	assert.Equal(t, StatusCompleted, waitOutcome(t, doneCh).Status)
	assert.Equal(t, StatusTimedOut, waitOutcome(t, stuckCh).Status)
}

func TestController_CancelAll(t *testing.T) {
	fetch := func(_ context.Context, id string) (types.DocumentRecord, error) {
		return pendingRecord(id), nil
	}

	cfg := types.PollConfig{InitialDelay: 1 * time.Hour, Interval: 1 * time.Hour, MaxAttempts: 5}
	c := New(cfg, fetch, nil)

	a := c.Start("doc-a")
	b := c.Start("doc-b")
	c.CancelAll()

	assert.Equal(t, StatusCancelled, waitOutcome(t, a).Status)
	assert.Equal(t, StatusCancelled, waitOutcome(t, b).Status)
	assert.False(t, c.Active("doc-a"))
	assert.False(t, c.Active("doc-b"))
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusScheduled, false},
		{StatusPolling, false},
		{StatusCompleted, true},
		{StatusTimedOut, true},
		{StatusCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
