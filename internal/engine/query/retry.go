package query

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.trai.ch/smartmate/internal/core/domain"
)

// RetryPolicy is an opt-in capped exponential backoff. The zero value
// performs a single attempt.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryPolicyFrom converts the configured retry settings.
func RetryPolicyFrom(cfg domain.RetryConfig) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		MaxDelay:    cfg.MaxDelay,
	}
}

// Enabled reports whether the policy allows more than one attempt.
func (p RetryPolicy) Enabled() bool {
	return p.MaxAttempts > 1
}

// Do runs fn until it succeeds, fails with a non-retryable error, the
// attempts are used up or ctx is done. notify is called before each wait and may be nil.
func (p RetryPolicy) Do(ctx context.Context, fn Fetcher, notify func(err error, wait time.Duration)) (any, error) {
	if !p.Enabled() {
		return fn(ctx)
	}

	base := p.BaseDelay
	if base <= 0 {
		base = domain.DefaultBaseDelay
	}
	maxDelay := p.MaxDelay
	if maxDelay < base {
		maxDelay = base
	}

	exp := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(base),
		backoff.WithMaxInterval(maxDelay),
		backoff.WithMaxElapsedTime(0),
	)
	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.MaxAttempts-1)), ctx)

	op := func() (any, error) {
		v, err := fn(ctx)
		if err != nil && !domain.IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return v, err
	}

	return backoff.RetryNotifyWithData[any](op, b, notify)
}
