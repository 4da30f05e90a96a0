// Package ai defines the content-generation boundary shared by the question
// and evaluation providers, plus best-effort parsing of model output.
package ai

import (
	"context"
	"errors"
)

// ErrContentGeneration marks a failure of the external generation
// collaborator. Providers absorb it and fall back to local content; it only
// surfaces to callers when the local fallback fails too.
var ErrContentGeneration = errors.New("content generation failed")

// Generator produces free-form text for a prompt. Implementations may block
// on the network; callers pass a context with a deadline.
type Generator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}
