// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marbrgr/DocProc/pkg/types"
)

func TestLoadConfig_DefaultsAndServerFlag(t *testing.T) {
	cfg := loadConfig()
	assert.Equal(t, types.DefaultBaseURL, cfg.Client.BaseURL)
	assert.Equal(t, int64(types.DefaultMaxFileSize), cfg.Upload.MaxFileSize)
	assert.Equal(t, types.DefaultPollMaxAttempts, cfg.Poll.MaxAttempts)

	require.NoError(t, rootCmd.PersistentFlags().Set("server", "http://example:9000"))
	defer rootCmd.PersistentFlags().Set("server", "")

	cfg = loadConfig()
	assert.Equal(t, "http://example:9000", cfg.Client.BaseURL)
}

func TestNewClientWith_UsesConfiguredStatePath(t *testing.T) {
	cfg := types.Config{
		Client: types.ClientConfig{StatePath: filepath.Join(t.TempDir(), "state.db")},
	}.WithDefaults()

	client, store, err := newClientWith(cfg)
	require.NoError(t, err)
	require.NotNil(t, client)
	defer store.Close()

	require.NoError(t, store.Set("token"))
	token, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "token", token)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short unchanged", "report.pdf", 30, "report.pdf"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"ascii cut", "abcdefghij", 8, "abcde..."},
		{"multi-byte cut on rune boundary", "résumé-déclaration-fiscale.pdf", 10, "résumé-..."},
		{"cjk cut", "請求書請求書請求書請求書", 6, "請求書..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
