// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_EmptyOnFirstOpen(t *testing.T) {
	s := openTestStore(t)

	token, err := s.Get()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStore_SetGetClear(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("tok-1"))
	token, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// A second Set replaces, never accumulates rows.
	require.NoError(t, s.Set("tok-2"))
	token, err = s.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	require.NoError(t, s.Clear())
	token, err = s.Get()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing an already-empty store is not an error.
	require.NoError(t, s.Clear())
}

func TestStore_RejectsEmptyToken(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.Set(""))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("persisted"))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	token, err := s2.Get()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore("seed")

	token, err := m.Get()
	require.NoError(t, err)
	assert.Equal(t, "seed", token)

	require.NoError(t, m.Clear())
	token, err = m.Get()
	require.NoError(t, err)
	assert.Empty(t, token)
}
