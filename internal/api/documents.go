// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/Marbrgr/DocProc/pkg/types"
)

// documentPayload is the raw record shape on the wire. Timestamps arrive
// as strings (the service emits naive ISO 8601 without a zone), so the
// payload is parsed and validated here before it becomes a DocumentRecord.
type documentPayload struct {
	ID               string         `json:"id"`
	DocumentID       string         `json:"document_id"` // upload responses use this key
	FileName         string         `json:"file_name"`
	FileType         string         `json:"file_type"`
	FileSize         int64          `json:"file_size"`
	CreatedAt        string         `json:"created_at"`
	ExtractedText    string         `json:"extracted_text"`
	AIDocumentType   string         `json:"ai_document_type"`
	AIConfidence     float64        `json:"ai_confidence"`
	AIModelUsed      string         `json:"ai_model_used"`
	AIKeyInformation map[string]any `json:"ai_key_information"`
}

// timeLayouts are tried in order when parsing wire timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseWireTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// toRecord converts a wire payload into a validated DocumentRecord.
func (p documentPayload) toRecord() (types.DocumentRecord, error) {
	id := p.ID
	if id == "" {
		id = p.DocumentID
	}

	createdAt, err := parseWireTime(p.CreatedAt)
	if err != nil {
		return types.DocumentRecord{}, fmt.Errorf("%w: document %s: %v", ErrValidation, id, err)
	}

	rec := types.DocumentRecord{
		ID:               id,
		FileName:         p.FileName,
		FileType:         p.FileType,
		FileSize:         p.FileSize,
		CreatedAt:        createdAt,
		ExtractedText:    p.ExtractedText,
		AIDocumentType:   p.AIDocumentType,
		AIConfidence:     p.AIConfidence,
		AIModelUsed:      p.AIModelUsed,
		AIKeyInformation: p.AIKeyInformation,
	}
	if err := rec.Validate(); err != nil {
		return types.DocumentRecord{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return rec, nil
}

// ListDocuments fetches the full document collection in server order.
func (c *Client) ListDocuments(ctx context.Context) ([]types.DocumentRecord, error) {
	var payloads []documentPayload
	if err := c.getJSON(ctx, "/documents/list", &payloads); err != nil {
		return nil, err
	}

	records := make([]types.DocumentRecord, 0, len(payloads))
	for _, p := range payloads {
		rec, err := p.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// GetDocument fetches a single record, possibly still analysis-pending.
func (c *Client) GetDocument(ctx context.Context, id string) (types.DocumentRecord, error) {
	if id == "" {
		return types.DocumentRecord{}, fmt.Errorf("%w: empty document id", ErrValidation)
	}

	var payload documentPayload
	if err := c.getJSON(ctx, "/documents/"+id, &payload); err != nil {
		return types.DocumentRecord{}, err
	}
	return payload.toRecord()
}

// DeleteDocument removes a document and reports per-engine vector cleanup.
func (c *Client) DeleteDocument(ctx context.Context, id string) (types.DeleteResult, error) {
	if id == "" {
		return types.DeleteResult{}, fmt.Errorf("%w: empty document id", ErrValidation)
	}

	req, err := c.bearerRequest(ctx, "DELETE", "/documents/"+id, nil)
	if err != nil {
		return types.DeleteResult{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return types.DeleteResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return types.DeleteResult{}, c.classify(resp)
	}

	var result types.DeleteResult
	if err := decodeBody(resp.Body, &result); err != nil {
		return types.DeleteResult{}, err
	}
	return result, nil
}
