// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"context"

	"github.com/Marbrgr/DocProc/pkg/types"
)

// CleanupVectors removes orphaned index entries across all engines and
// returns the engine-by-engine counts as structured data for the
// consumer to render. No automatic retry: a failure is one aggregate
// error, never partial per-engine results. Document state is untouched
// either way.
func (w *Workspace) CleanupVectors(ctx context.Context) (types.CleanupReport, error) {
	return w.client.CleanupVectors(ctx)
}
