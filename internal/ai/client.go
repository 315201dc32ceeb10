// Package ai wraps the generative provider with failure classification and a
// bounded retry policy for batch metadata generation.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"autoseo/pkg/models"
)

// RetryPolicy bounds the client's own retry behaviour: at most MaxRetries
// additional attempts, each after a fixed Delay. Quota failures are never
// retried.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// BatchClient drives a single provider call per batch and owns the
// retry-on-transient-failure logic for that call only.
type BatchClient struct {
	provider models.SeoProvider
	retry    RetryPolicy
}

func NewBatchClient(provider models.SeoProvider, retry RetryPolicy) *BatchClient {
	return &BatchClient{provider: provider, retry: retry}
}

// Name returns the underlying provider identifier.
func (c *BatchClient) Name() string {
	return c.provider.Name()
}

// GenerateBatch requests metadata for all products in one provider call. On
// success the returned slice is index-aligned with products. On failure the
// returned error is an *Error whose Kind is KindQuota (immediately, no retry)
// or KindOther (after the retry budget is spent).
func (c *BatchClient) GenerateBatch(ctx context.Context, products []models.ProductInput) ([]models.SeoOutput, error) {
	if len(products) == 0 {
		return nil, &Error{Kind: KindOther, Message: "empty batch"}
	}

	for attempt := 0; ; attempt++ {
		out, err := c.provider.GenerateBatch(ctx, products)
		if err == nil {
			if len(out) == len(products) {
				return out, nil
			}
			// A miscounted response cannot be mapped back to rows safely.
			err = fmt.Errorf("provider returned %d results for %d products", len(out), len(products))
		}

		classified := Classify(err)
		if classified.Kind == KindQuota {
			slog.Error("provider quota exhausted", "provider", c.provider.Name(), "error", err)
			return nil, classified
		}

		if attempt >= c.retry.MaxRetries {
			return nil, &Error{Kind: KindOther, Message: classified.Message, Err: classified.Err}
		}

		slog.Warn("provider call failed, retrying batch",
			"provider", c.provider.Name(),
			"attempt", attempt+1,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, &Error{Kind: KindOther, Message: ctx.Err().Error(), Err: ctx.Err()}
		case <-time.After(c.retry.Delay):
		}
	}
}
