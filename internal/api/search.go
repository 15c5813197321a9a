// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/Marbrgr/DocProc/pkg/types"
)

// Search runs a semantic query across the user's documents. Results are
// transient; nothing here touches the document cache.
func (c *Client) Search(ctx context.Context, query string) (types.SearchOutput, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.SearchOutput{}, fmt.Errorf("%w: empty query", ErrValidation)
	}

	var out types.SearchOutput
	if err := c.postJSON(ctx, "/documents/search", map[string]string{"query": query}, &out); err != nil {
		return types.SearchOutput{}, err
	}
	if out.Query == "" {
		out.Query = query
	}
	return out, nil
}

// AskQuestion sends a question to the active engine and returns the
// answer with confidence, method, and cited source chunks.
func (c *Client) AskQuestion(ctx context.Context, question string) (types.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return types.Answer{}, fmt.Errorf("%w: empty question", ErrValidation)
	}

	var out types.Answer
	if err := c.postJSON(ctx, "/documents/question", map[string]string{"question": question}, &out); err != nil {
		return types.Answer{}, err
	}
	if out.Question == "" {
		out.Question = question
	}
	return out, nil
}
