// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the document service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docproc/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the resource client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the service root, e.g. "http://localhost:8000/api/v1".
	BaseURL string `json:"base_url" yaml:"base_url"`

	// StatePath is the sqlite file holding the persisted session token.
	// Empty selects ~/.config/docproc/state.db.
	StatePath string `json:"state_path,omitempty" yaml:"state_path,omitempty"`

	// MaxRetries bounds transient-failure retries on idempotent requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// UploadConfig holds client-side upload preconditions. Violations are
// rejected before any network I/O.
type UploadConfig struct {
	// MaxFileSize is the upload size cap in bytes (default 10 MiB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// AllowedMIMETypes lists acceptable content types. Empty selects the
	// defaults: application/pdf, image/png, image/jpeg.
	AllowedMIMETypes []string `json:"allowed_mime_types,omitempty" yaml:"allowed_mime_types,omitempty"`
}

// PollConfig tunes the per-document analysis poll loop. The attempt
// budget (MaxAttempts × Interval) bounds worst-case latency and backend
// load per document.
type PollConfig struct {
	// InitialDelay is the wait before the first fetch after a session
	// starts (default 3s).
	InitialDelay time.Duration `json:"initial_delay" yaml:"initial_delay"`

	// Interval is the wait between consecutive fetch attempts (default 2s).
	Interval time.Duration `json:"interval" yaml:"interval"`

	// MaxAttempts is the fetch budget before the session times out
	// (default 10).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
}

// Config groups all client configuration.
type Config struct {
	Client ClientConfig `json:"client" yaml:"client"`
	Upload UploadConfig `json:"upload" yaml:"upload"`
	Poll   PollConfig   `json:"poll" yaml:"poll"`
}

// Defaults used when a config file omits a field.
const (
	DefaultBaseURL     = "http://localhost:8000/api/v1"
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "docproc/0.1"
	DefaultMaxRetries  = 3
	DefaultMaxFileSize = 10 << 20

	DefaultPollInitialDelay = 3 * time.Second
	DefaultPollInterval     = 2 * time.Second
	DefaultPollMaxAttempts  = 10
)

// DefaultAllowedMIMETypes are the upload content types the service accepts.
var DefaultAllowedMIMETypes = []string{"application/pdf", "image/png", "image/jpeg"}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = DefaultBaseURL
	}
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = DefaultTimeout
	}
	if c.Client.UserAgent == "" {
		c.Client.UserAgent = DefaultUserAgent
	}
	if c.Client.MaxRetries <= 0 {
		c.Client.MaxRetries = DefaultMaxRetries
	}
	if c.Upload.MaxFileSize <= 0 {
		c.Upload.MaxFileSize = DefaultMaxFileSize
	}
	if len(c.Upload.AllowedMIMETypes) == 0 {
		c.Upload.AllowedMIMETypes = append([]string(nil), DefaultAllowedMIMETypes...)
	}
	if c.Poll.InitialDelay <= 0 {
		c.Poll.InitialDelay = DefaultPollInitialDelay
	}
	if c.Poll.Interval <= 0 {
		c.Poll.Interval = DefaultPollInterval
	}
	if c.Poll.MaxAttempts <= 0 {
		c.Poll.MaxAttempts = DefaultPollMaxAttempts
	}
	return c
}
