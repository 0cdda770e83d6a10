package automation

import (
	"context"
	"fmt"
	"time"
)

// DefaultPollInterval is the delay between two predicate evaluations.
const DefaultPollInterval = 250 * time.Millisecond

// PollUntil evaluates cond every interval until it reports true, returns
// a non-retryable error, or ctx is done. Errors from cond are treated as
// "not yet" and the last one is attached to the timeout error, since pages
// often fail evaluations transiently while re-rendering.
func PollUntil(ctx context.Context, interval time.Duration, cond func(ctx context.Context) (bool, error)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		done, err := cond(ctx)
		if err == nil && done {
			return nil
		}
		if err != nil {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("condition not met: %w (last error: %v)", ctx.Err(), lastErr)
			}
			return fmt.Errorf("condition not met: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
