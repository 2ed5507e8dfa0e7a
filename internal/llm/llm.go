// Package llm abstracts the text-transformation capability and owns the
// fixed prompt set.
package llm

import (
	"context"
	"errors"
)

// ErrLLM is the only transformation failure callers see; the cause is
// logged at the component boundary.
var ErrLLM = errors.New("llm request failed")

// Client submits a single-turn completion request.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm not configured")

// PlaceholderClient is a stub implementation used when no provider
// credentials are configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
