package model

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/hupe1980/reactmesh/core"
)

// RateLimitedModel paces calls to the wrapped Model with a token bucket.
type RateLimitedModel struct {
	next    Model
	limiter *rate.Limiter
}

// NewRateLimitedModel wraps next so that at most rps calls per second are
// issued, allowing bursts of up to burst calls. A non-positive rps returns
// next unchanged.
func NewRateLimitedModel(next Model, rps float64, burst int) Model {
	if rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedModel{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Generate waits for a token, then delegates.
func (m *RateLimitedModel) Generate(ctx context.Context, messages []core.Message) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return m.next.Generate(ctx, messages)
}

// Info returns the wrapped model's info.
func (m *RateLimitedModel) Info() Info { return m.next.Info() }
