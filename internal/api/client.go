// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api implements the typed resource client for the document
// service. Every operation requires the current bearer token and fails
// fast when none is stored; an authorization failure from the server
// clears the session before the error is returned, so callers can rely
// on ErrAuthExpired implying a logged-out state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Marbrgr/DocProc/internal/httputil"
	"github.com/Marbrgr/DocProc/internal/session"
	"github.com/Marbrgr/DocProc/pkg/types"
)

// Client issues typed requests against the document service.
type Client struct {
	http   *http.Client
	base   string
	tokens session.TokenSource
	cfg    types.ClientConfig
	upload types.UploadConfig
}

// New builds a resource client. The token source gates every
// authenticated call.
func New(cfg types.ClientConfig, upload types.UploadConfig, tokens session.TokenSource) *Client {
	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		tokens: tokens,
		cfg:    cfg,
		upload: upload,
	}
}

// bearerRequest constructs a request with the stored token attached. It
// returns ErrUnauthenticated without touching the network when no
// session exists.
func (c *Client) bearerRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	token, err := c.tokens.Get()
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if token == "" {
		return nil, ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	return req, nil
}

// doGet executes an idempotent request with transient-failure retries.
func (c *Client) doGet(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, nil
}

// do executes a mutating request exactly once.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, nil
}

// classify maps a non-2xx response to the error taxonomy. On 401 the
// session is cleared here, not by the caller: auth expiry must force a
// logout no matter which operation tripped it.
func (c *Client) classify(resp *http.Response) error {
	detail := serverDetail(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if err := c.tokens.Clear(); err != nil {
			return fmt.Errorf("%w (session clear failed: %v)", ErrAuthExpired, err)
		}
		return ErrAuthExpired
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case detail != "":
		return fmt.Errorf("%w: HTTP %d: %s", ErrServer, resp.StatusCode, detail)
	default:
		return fmt.Errorf("%w: HTTP %d", ErrServer, resp.StatusCode)
	}
}

// serverDetail extracts the service's {"detail": "..."} error body, if any.
func serverDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

// decodeBody decodes a JSON response body, flagging malformed payloads
// as validation failures rather than trusting them implicitly.
func decodeBody(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("%w: parsing response: %v", ErrValidation, err)
	}
	return nil
}

// getJSON performs an authenticated GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.bearerRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.doGet(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.classify(resp)
	}
	return decodeBody(resp.Body, out)
}

// postJSON performs an authenticated POST with a JSON body (nil for an
// empty body) and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.bearerRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.classify(resp)
	}
	if out == nil {
		return nil
	}
	return decodeBody(resp.Body, out)
}
