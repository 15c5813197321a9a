// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// DownloadDocument streams a document's binary content to destPath. The
// bytes go to a temporary file first and are renamed into place on
// success, so a failed download never leaves a truncated file behind.
func (c *Client) DownloadDocument(ctx context.Context, id, destPath string) (int64, error) {
	if id == "" {
		return 0, fmt.Errorf("%w: empty document id", ErrValidation)
	}

	req, err := c.bearerRequest(ctx, http.MethodGet, "/documents/"+id+"/download", nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.doGet(ctx, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, c.classify(resp)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".docproc-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	written, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return written, nil
}
