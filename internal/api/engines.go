// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Marbrgr/DocProc/pkg/types"
)

// EngineStatus fetches the engine inventory. Each call fully replaces
// any snapshot the caller holds; snapshots are never merged.
func (c *Client) EngineStatus(ctx context.Context) (types.EngineStatus, error) {
	var status types.EngineStatus
	if err := c.getJSON(ctx, "/documents/engines/status", &status); err != nil {
		return types.EngineStatus{}, err
	}
	if err := status.Validate(); err != nil {
		return types.EngineStatus{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return status, nil
}

// SwitchEngine asks the service to route future search/question calls
// through the named engine.
func (c *Client) SwitchEngine(ctx context.Context, engine string) (types.SwitchResult, error) {
	if engine == "" {
		return types.SwitchResult{}, fmt.Errorf("%w: empty engine name", ErrValidation)
	}

	path := "/documents/engines/switch?engine_type=" + url.QueryEscape(engine)
	var result types.SwitchResult
	if err := c.postJSON(ctx, path, nil, &result); err != nil {
		return types.SwitchResult{}, err
	}
	return result, nil
}

// CleanupVectors removes orphaned index entries across all engines and
// returns per-engine counts. The call is atomic from the client's
// perspective: an error means no report, never partial counts.
func (c *Client) CleanupVectors(ctx context.Context) (types.CleanupReport, error) {
	var report types.CleanupReport
	if err := c.postJSON(ctx, "/documents/cleanup-vectors", nil, &report); err != nil {
		return types.CleanupReport{}, err
	}
	return report, nil
}
