// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// EngineInfo describes one search/indexing engine's capabilities.
type EngineInfo struct {
	// IsAvailable reports whether the engine can currently serve queries.
	IsAvailable bool `json:"is_available" yaml:"is_available"`

	// Model names the embedding or LLM model backing the engine, if any.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// RAGImplementation labels the retrieval implementation.
	RAGImplementation string `json:"rag_implementation,omitempty" yaml:"rag_implementation,omitempty"`

	// DocumentsStored counts documents held in the engine's index.
	DocumentsStored int `json:"documents_stored,omitempty" yaml:"documents_stored,omitempty"`

	// Features flags optional capabilities (e.g. "question_answering").
	Features map[string]bool `json:"features,omitempty" yaml:"features,omitempty"`
}

// EngineStatus is the full engine inventory. Each fetch replaces the
// prior snapshot wholesale; it is never merged incrementally.
type EngineStatus struct {
	CurrentEngine    string                `json:"current_engine" yaml:"current_engine"`
	AvailableEngines []string              `json:"available_engines" yaml:"available_engines"`
	EngineDetails    map[string]EngineInfo `json:"engine_details" yaml:"engine_details"`
}

// Validate checks the status snapshot for internal consistency: every
// listed engine must have a details entry.
func (s EngineStatus) Validate() error {
	for _, name := range s.AvailableEngines {
		if _, ok := s.EngineDetails[name]; !ok {
			return fmt.Errorf("engine status lists %q without details", name)
		}
	}
	return nil
}

// SwitchResult acknowledges an engine switch.
type SwitchResult struct {
	Message       string `json:"message" yaml:"message"`
	CurrentEngine string `json:"current_engine" yaml:"current_engine"`
}

// EngineCleanup holds one engine's orphan-cleanup counts.
type EngineCleanup struct {
	// OrphansFound counts index entries whose document no longer exists
	// in primary storage.
	OrphansFound int `json:"orphans_found" yaml:"orphans_found"`

	// OrphansRemoved counts entries actually deleted.
	OrphansRemoved int `json:"orphans_removed" yaml:"orphans_removed"`
}

// CleanupReport is the engine-by-engine outcome of the orphan-cleanup
// operation. The backend call is atomic from the client's perspective:
// a failure yields no report at all, never partial per-engine counts.
type CleanupReport struct {
	Engines      map[string]EngineCleanup `json:"engines" yaml:"engines"`
	TotalFound   int                      `json:"total_found" yaml:"total_found"`
	TotalRemoved int                      `json:"total_removed" yaml:"total_removed"`
}
