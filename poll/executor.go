// Package poll implements the waiting policies for the provider's eventually
// consistent bot lifecycle: bounded retry on transient failures, bounded
// waiting while a bot is still joining, and bounded waiting for recordings
// to appear. A provider 404 is always terminal — the bot id is unknown or
// expired and further attempts are pointless.
package poll

import (
	"context"
	"fmt"
	"time"

	"meetbot/provider"
	"meetbot/types"
)

// Fetch is one remote read of a bot resource.
type Fetch func(ctx context.Context) (*types.Bot, error)

// Policy is the budget for one logical operation: how many attempts, and how
// long to wait between them. Each invocation gets a fresh counter; budgets
// are never shared across calls.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Do executes fetch with bounded retry. Failures are classified: a provider
// 404 is returned immediately without consuming retries; anything else
// (timeout, 5xx, network error) is retried after Delay until the budget is
// spent, at which point the last cause is returned wrapped. At most
// MaxAttempts calls are made, strictly sequentially.
func Do(ctx context.Context, p Policy, fetch Fetch) (*types.Bot, error) {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		bot, err := fetch(ctx)
		if err == nil {
			return bot, nil
		}
		if provider.IsNotFound(err) {
			return nil, err
		}
		lastErr = err

		if attempt < p.MaxAttempts {
			if err := sleep(ctx, p.Delay); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", p.MaxAttempts, lastErr)
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
