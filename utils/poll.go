package utils

import (
	"context"
	"errors"
	"time"
)

var ErrPollTimeout = errors.New("poll timed out")

// Poll sleeps interval and then calls check, repeatedly, until check reports done, check
// fails, the elapsed time since the call exceeds timeout, or ctx is done. The first check
// runs only after one full interval.
func Poll(
	ctx context.Context,
	interval time.Duration,
	timeout time.Duration,
	check func(ctx context.Context) (bool, error),
) error {
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if time.Since(start) > timeout {
			return ErrPollTimeout
		}
	}
}
