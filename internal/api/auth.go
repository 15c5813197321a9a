// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Marbrgr/DocProc/pkg/types"
)

// Login exchanges credentials for a bearer token. It is the one
// operation issued without a stored session; persisting the returned
// token is the caller's responsibility.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", fmt.Errorf("%w: invalid username or password", ErrServer)
	}
	if resp.StatusCode != http.StatusOK {
		return "", c.classify(resp)
	}

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: parsing login response: %v", ErrValidation, err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: login response missing access_token", ErrValidation)
	}
	return out.AccessToken, nil
}

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (types.User, error) {
	var user types.User
	if err := c.getJSON(ctx, "/auth/me", &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}
