package port

import (
	"context"

	"docsift/internal/prompt"
)

// InvokeInput carries one model invocation. Exactly one of Prompt or
// Content is set: Prompt for text-only requests, Content (plus System) for
// multimodal requests.
type InvokeInput struct {
	ModelID string
	Params  map[string]any
	Prompt  string
	System  string
	Content []prompt.ContentBlock
}

// ModelInvoker abstracts the LLM invocation. Implementations own retries
// and timeouts; an exhausted retry budget surfaces as a single terminal
// error. The pipeline never parses a partial response after a failed or
// cancelled call.
type ModelInvoker interface {
	Invoke(ctx context.Context, input InvokeInput) (string, error)
}
