// Package summary turns an acquired transcript into a short summary via a
// configurable LLM provider, with input truncation and a hard time bound
// around every provider call.
package summary

import (
	"context"
	"time"
)

// Request carries one summarization job. Provider names a registered
// backend; APIKey is the credential for that backend, resolved by the caller
// before the request reaches the service.
type Request struct {
	Text     string
	Provider string
	APIKey   string
}

// Service produces a summary for a transcript.
type Service interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// Provider is one LLM backend. Complete sends the fully rendered prompt and
// returns the model's text. Implementations create their client per call so
// no credential outlives the request.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt, apiKey string) (string, error)
}

type Config struct {
	MaxInputChars int
	Timeout       time.Duration
}
