package cloud

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// ExecuteAction wraps a function with robust retry logic, including exponential backoff,
// jitter, and context timeouts.
//
// opName is used for logging and debugging purposes.
// operation is the function to execute; it must accept a context to support cancellation.
func ExecuteAction(ctx context.Context, cfg RetryConfig, opName string, operation func(ctx context.Context) error) error {
	// Enforce the global operation timeout defined in the config.
	// This ensures the retry loop doesn't run indefinitely.
	if cfg.OperationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.OperationTimeout)
		defer cancel()
	}

	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		// 1. Pre-check: Stop immediately if the context is cancelled or timed out.
		if ctx.Err() != nil {
			return fmt.Errorf("%s timed out before attempt %d: %w", opName, attempt+1, ctx.Err())
		}

		// 2. Execute the operation
		lastErr = operation(ctx)
		if lastErr == nil {
			return nil
		}

		// 3. Decision: Should we retry?
		if cfg.IsRetryable != nil && !cfg.IsRetryable(lastErr) {
			return lastErr // Permanent error, fail fast.
		}

		// If this was the last attempt, don't wait/sleep, just return the error.
		if attempt == cfg.MaxRetries {
			break
		}

		slog.Warn("Transient error detected, scheduling retry",
			"operation", opName,
			"attempt", attempt+1,
			"max_retries", cfg.MaxRetries,
			"error", lastErr)

		// 4. Wait with Context awareness
		select {
		case <-time.After(backoffDelay(cfg, attempt)):
			continue
		case <-ctx.Done():
			return fmt.Errorf("%s context cancelled during backoff: %w", opName, ctx.Err())
		}
	}

	return fmt.Errorf("%s failed after %d retries: %w", opName, cfg.MaxRetries, lastErr)
}

// backoffDelay computes BaseDelay * 2^attempt plus up to 50% jitter, capped at MaxDelay.
func backoffDelay(cfg RetryConfig, attempt int) time.Duration {
	backoff := float64(cfg.BaseDelay) * math.Pow(2, float64(attempt))

	sleep := time.Duration(backoff)
	if half := int64(backoff) / 2; half > 0 {
		sleep += time.Duration(rand.Int63n(half))
	}

	if cfg.MaxDelay > 0 {
		sleep = min(sleep, cfg.MaxDelay)
	}
	return sleep
}
