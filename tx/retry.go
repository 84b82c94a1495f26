package tx

import (
	"context"
	"errors"
	"github.com/cenkalti/backoff/v4"
)

// Number of simulation attempts before falling back to the default compute unit limit.
const SIMULATION_MAX_ATTEMPTS = 5

// RetryPolicy retries an operation immediately, up to MaxAttempts times in total, while
// Retryable accepts the returned error.
type RetryPolicy struct {
	MaxAttempts uint64
	Retryable   func(err error) bool
}

func SimulationRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: SIMULATION_MAX_ATTEMPTS,
		Retryable:   isTransientSimulationError,
	}
}

// Do runs operation with 1-based attempt numbers and returns the last error when every
// attempt failed or the first error Retryable rejects.
func (p RetryPolicy) Do(ctx context.Context, operation func(attempt int) error) error {
	attempts := max(p.MaxAttempts, 1)
	back := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, attempts-1), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := operation(attempt)
		if err != nil && p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, back)
}

// Transport failures and stale blockhash simulations are worth another attempt.
func isTransientSimulationError(err error) bool {
	if IsErrorKind(err, ErrKindRpcClient) {
		return true
	}
	var txErr *TransactionError
	return errors.As(err, &txErr) && txErr.IsBlockhashNotFound()
}
