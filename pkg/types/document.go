// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the DocProc workspace
// client: the wire records exchanged with the document service and the
// configuration structs the CLI loads.
package types

import (
	"fmt"
	"time"
)

// AITypeUnknown is the sentinel the backend stores before classification
// has run (or when it gave up). A record carrying it is still
// analysis-pending from the client's point of view.
const AITypeUnknown = "unknown"

// DocumentRecord is the client-side snapshot of one server document.
// Analysis fields arrive asynchronously, often seconds after upload, so
// they are all optional.
type DocumentRecord struct {
	// ID is the stable server-assigned identifier.
	ID string `json:"id" yaml:"id"`

	// FileName is the original name of the uploaded file.
	FileName string `json:"file_name" yaml:"file_name"`

	// FileType is the server's file-type label (e.g. "pdf", "png", "jpg").
	FileType string `json:"file_type" yaml:"file_type"`

	// FileSize is the file size in bytes.
	FileSize int64 `json:"file_size" yaml:"file_size"`

	// CreatedAt is the server-side creation timestamp.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// ExtractedText is the text extraction result, empty until the
	// processing task has run.
	ExtractedText string `json:"extracted_text,omitempty" yaml:"extracted_text,omitempty"`

	// AIDocumentType is the AI classification label. Empty or
	// AITypeUnknown means classification has not materialized yet.
	AIDocumentType string `json:"ai_document_type,omitempty" yaml:"ai_document_type,omitempty"`

	// AIConfidence is the classification confidence in [0,1].
	AIConfidence float64 `json:"ai_confidence,omitempty" yaml:"ai_confidence,omitempty"`

	// AIModelUsed names the model that produced the classification.
	AIModelUsed string `json:"ai_model_used,omitempty" yaml:"ai_model_used,omitempty"`

	// AIKeyInformation holds extracted key/value pairs (scalar values).
	AIKeyInformation map[string]any `json:"ai_key_information,omitempty" yaml:"ai_key_information,omitempty"`
}

// AnalysisPending reports whether the record is still waiting for its
// asynchronous AI classification.
func (d DocumentRecord) AnalysisPending() bool {
	return d.AIDocumentType == "" || d.AIDocumentType == AITypeUnknown
}

// Validate rejects malformed records at the client boundary rather than
// trusting the backend's response shape implicitly.
func (d DocumentRecord) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("document record missing id")
	}
	if d.FileSize < 0 {
		return fmt.Errorf("document %s: negative file size %d", d.ID, d.FileSize)
	}
	if d.AIConfidence < 0 || d.AIConfidence > 1 {
		return fmt.Errorf("document %s: confidence %.3f outside [0,1]", d.ID, d.AIConfidence)
	}
	return nil
}

// User is the authenticated account returned by the me endpoint.
type User struct {
	ID                 string `json:"id" yaml:"id"`
	Username           string `json:"username" yaml:"username"`
	Email              string `json:"email" yaml:"email"`
	DocumentsProcessed int    `json:"documents_processed" yaml:"documents_processed"`
}

// DeleteResult is the confirmation returned by the delete endpoint,
// including which engines dropped the document's vectors.
type DeleteResult struct {
	Message       string          `json:"message" yaml:"message"`
	VectorCleanup map[string]bool `json:"vector_cleanup,omitempty" yaml:"vector_cleanup,omitempty"`
}
