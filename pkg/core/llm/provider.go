// Package llm abstracts the hosted text-generation services the assistant
// can talk to. The report core never imports this package; it hands over an
// opaque text summary and gets an opaque text answer back.
package llm

import (
	"context"
)

// Provider is the interface every hosted model backend implements.
// Options carry provider-specific knobs (model override, api_key override,
// response_format) without widening the interface.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
