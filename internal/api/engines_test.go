// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents/engines/status", r.URL.Path)
		w.Write([]byte(`{
			"current_engine": "langchain",
			"available_engines": ["langchain", "openai_direct"],
			"engine_details": {
				"langchain": {"is_available": true, "model": "gpt-4o-mini",
					"rag_implementation": "chroma", "documents_stored": 12,
					"features": {"question_answering": true, "semantic_search": true}},
				"openai_direct": {"is_available": false}
			}
		}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	status, err := c.EngineStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "langchain", status.CurrentEngine)
	assert.Len(t, status.AvailableEngines, 2)
	assert.True(t, status.EngineDetails["langchain"].Features["question_answering"])
	assert.Equal(t, 12, status.EngineDetails["langchain"].DocumentsStored)
	assert.False(t, status.EngineDetails["openai_direct"].IsAvailable)
}

func TestEngineStatus_RejectsInconsistentSnapshot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// "ghost" is listed but has no details entry.
		w.Write([]byte(`{"current_engine":"langchain","available_engines":["langchain","ghost"],
			"engine_details":{"langchain":{"is_available":true}}}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	_, err := c.EngineStatus(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSwitchEngine(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/documents/engines/switch", r.URL.Path)
		require.Equal(t, "openai_direct", r.URL.Query().Get("engine_type"))
		w.Write([]byte(`{"message":"Switched to openai_direct","current_engine":"openai_direct"}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	result, err := c.SwitchEngine(context.Background(), "openai_direct")
	require.NoError(t, err)
	assert.Equal(t, "openai_direct", result.CurrentEngine)
}

func TestCleanupVectors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents/cleanup-vectors", r.URL.Path)
		w.Write([]byte(`{"engines":{"langchain":{"orphans_found":3,"orphans_removed":3},
			"openai_direct":{"orphans_found":1,"orphans_removed":0}},
			"total_found":4,"total_removed":3}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	report, err := c.CleanupVectors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Engines["langchain"].OrphansRemoved)
	assert.Equal(t, 4, report.TotalFound)
}

func TestCleanupVectors_FailureIsAggregate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"cleanup failed"}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	report, err := c.CleanupVectors(context.Background())
	assert.ErrorIs(t, err, ErrServer)
	assert.Empty(t, report.Engines, "no partial per-engine results on failure")
}

func TestSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents/search", r.URL.Path)
		w.Write([]byte(`{"query":"invoices","engine_used":"langchain","results":[
			{"doc_id":"doc-1","file_name":"invoice.pdf","content":"Total due 42.50",
			 "similarity":0.87,"chunk_id":"doc-1#2","engine":"langchain"}]}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	out, err := c.Search(context.Background(), "invoices")
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "langchain", out.EngineUsed)
	assert.InDelta(t, 0.87, out.Results[0].Similarity, 1e-9)
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("empty query must not reach the network")
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	_, err := c.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAskQuestion(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents/question", r.URL.Path)
		w.Write([]byte(`{"question":"what is the total?","answer":"42.50",
			"confidence":0.91,"engine_used":"langchain","method":"rag",
			"sources":[{"doc_id":"doc-1","chunk_id":"doc-1#2"}]}`))
	}))
	defer ts.Close()

	c, _ := newTestClient(ts, "token")
	answer, err := c.AskQuestion(context.Background(), "what is the total?")
	require.NoError(t, err)
	assert.Equal(t, "42.50", answer.Answer)
	assert.InDelta(t, 0.91, answer.Confidence, 1e-9)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "doc-1", answer.Sources[0].DocID)
}
