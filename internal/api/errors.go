// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import "errors"

// Client errors form a fixed taxonomy; callers classify with errors.Is.
var (
	// ErrUnauthenticated means no token is present. The request was
	// never sent.
	ErrUnauthenticated = errors.New("not logged in")

	// ErrAuthExpired means the server rejected the token. The stored
	// session has already been cleared by the time this is returned;
	// the caller must force a re-login flow, never swallow it.
	ErrAuthExpired = errors.New("session expired")

	// ErrValidation means a client-side precondition failed (bad file
	// type, oversized upload, malformed payload). Nothing reached the
	// network for upload preconditions.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTransport means the request failed at the network level and is
	// safe to retry.
	ErrTransport = errors.New("transport failure")

	// ErrServer means a non-auth 4xx/5xx. Not retried automatically.
	ErrServer = errors.New("server error")
)
