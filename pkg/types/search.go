// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchResult is one ranked chunk returned by the semantic search
// endpoint. Results are transient: each query produces a fresh set and
// nothing here is cached client-side.
type SearchResult struct {
	// DocID is the owning document's identifier.
	DocID string `json:"doc_id" yaml:"doc_id"`

	// FileName is the owning document's original file name.
	FileName string `json:"file_name" yaml:"file_name"`

	// Content is the matched chunk text.
	Content string `json:"content" yaml:"content"`

	// Similarity is the match score in [0,1].
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// ChunkID identifies the chunk within the document.
	ChunkID string `json:"chunk_id" yaml:"chunk_id"`

	// Engine names the search engine that produced this result.
	Engine string `json:"engine" yaml:"engine"`
}

// SearchOutput is the full response to one search query.
type SearchOutput struct {
	Query      string         `json:"query" yaml:"query"`
	EngineUsed string         `json:"engine_used" yaml:"engine_used"`
	Results    []SearchResult `json:"results" yaml:"results"`
}

// SourceRef cites a chunk that contributed to an answer.
type SourceRef struct {
	DocID   string `json:"doc_id" yaml:"doc_id"`
	ChunkID string `json:"chunk_id" yaml:"chunk_id"`
}

// Answer is the response to one question. Like search results it is
// transient and never merged into cached document state.
type Answer struct {
	Question   string      `json:"question" yaml:"question"`
	Answer     string      `json:"answer" yaml:"answer"`
	Confidence float64     `json:"confidence" yaml:"confidence"`
	EngineUsed string      `json:"engine_used" yaml:"engine_used"`
	Method     string      `json:"method" yaml:"method"`
	Sources    []SourceRef `json:"sources,omitempty" yaml:"sources,omitempty"`
}
