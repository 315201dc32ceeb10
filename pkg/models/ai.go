package models

import "context"

// SeoProvider is the interface every generative backend must implement.
// Never call a specific provider directly — always inject this interface.
//
// GenerateBatch sends one request covering all products and returns one
// SeoOutput per product, index-aligned with the input. Implementations make
// exactly one network call per invocation; retry policy lives in the batch
// client wrapping the provider, not here.
type SeoProvider interface {
	GenerateBatch(ctx context.Context, products []ProductInput) ([]SeoOutput, error)
	// Name returns the provider identifier (e.g., "gemini", "mock").
	Name() string
}
