// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"context"

	"github.com/Marbrgr/DocProc/internal/api"
	"github.com/Marbrgr/DocProc/pkg/types"
)

// Upload validates and streams a file to the service and, on success,
// merges the created record into the collection. A failed upload leaves
// the collection unchanged. No poll session starts here: analysis is
// polled when the document is focused, not when it is uploaded.
func (w *Workspace) Upload(ctx context.Context, path string, progress api.ProgressFunc) (types.DocumentRecord, error) {
	rec, err := w.client.UploadDocument(ctx, path, progress)
	if err != nil {
		return types.DocumentRecord{}, err
	}
	w.InsertOrReplace(rec)
	return rec, nil
}
