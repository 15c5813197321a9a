// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/Marbrgr/DocProc/pkg/types"
)

// ProgressFunc receives fractional upload progress in [0,1]. Calls are
// advisory: dropping them or delivering a stale lower value must never
// affect correctness, so reported values are clamped to the maximum
// seen so far.
type ProgressFunc func(fraction float64)

// extension → MIME type for the formats the service accepts.
var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// validateUpload enforces the client-side preconditions. A violation
// returns ErrValidation before any network I/O.
func (c *Client) validateUpload(path string, size int64) (string, error) {
	if size > c.upload.MaxFileSize {
		return "", fmt.Errorf("%w: file size %d exceeds limit of %d bytes",
			ErrValidation, size, c.upload.MaxFileSize)
	}

	mimeType, ok := mimeByExtension[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: unsupported file type %q (only PDF, PNG, and JPEG are accepted)",
			ErrValidation, filepath.Ext(path))
	}

	allowed := false
	for _, m := range c.upload.AllowedMIMETypes {
		if m == mimeType {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("%w: file type %s is not permitted", ErrValidation, mimeType)
	}
	return mimeType, nil
}

// progressReader counts bytes read from the underlying file and reports
// a monotonically non-decreasing fraction of total.
type progressReader struct {
	r        io.Reader
	total    int64
	sent     int64
	maxSeen  float64
	progress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 && p.progress != nil && p.total > 0 {
		p.sent += int64(n)
		fraction := float64(p.sent) / float64(p.total)
		if fraction > 1 {
			fraction = 1
		}
		if fraction > p.maxSeen {
			p.maxSeen = fraction
			p.progress(fraction)
		}
	}
	return n, err
}

// UploadDocument validates and streams a file to the service, reporting
// progress as bytes are sent, and returns the created record. The
// analysis fields are typically absent on creation; the caller is
// expected to poll for them.
func (c *Client) UploadDocument(ctx context.Context, path string, progress ProgressFunc) (types.DocumentRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.DocumentRecord{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	mimeType, err := c.validateUpload(path, info.Size())
	if err != nil {
		return types.DocumentRecord{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return types.DocumentRecord{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	counted := &progressReader{r: file, total: info.Size(), progress: progress}

	// Stream the multipart body through a pipe so the file is never
	// buffered whole in memory. The request is built before the writer
	// goroutine starts: a failure here (no stored session, bad URL)
	// must not strand a goroutine blocked on the pipe.
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	req, err := c.bearerRequest(ctx, http.MethodPost, "/documents/upload", pr)
	if err != nil {
		pw.Close()
		pr.Close()
		return types.DocumentRecord{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	go func() {
		part, err := createFormFile(form, "file", filepath.Base(path), mimeType)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, counted); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	resp, err := c.do(req)
	if err != nil {
		return types.DocumentRecord{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.DocumentRecord{}, c.classify(resp)
	}

	var payload documentPayload
	if err := decodeBody(resp.Body, &payload); err != nil {
		return types.DocumentRecord{}, err
	}
	return payload.toRecord()
}

// createFormFile is multipart.Writer.CreateFormFile with an explicit
// content type instead of application/octet-stream.
func createFormFile(w *multipart.Writer, field, filename, mimeType string) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", mimeType)
	return w.CreatePart(header)
}
