package resilience

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

// RetryConfig controls the retry loop for one invocation.
type RetryConfig struct {
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	AttemptTimeout    time.Duration
}

// DefaultRetryConfig mirrors the defaults the dashboard frontend has
// always used: 3 retries, 1 s base delay doubling up to 10 s, 15 s per
// attempt.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          10 * time.Second,
		BackoffMultiplier: 2,
		AttemptTimeout:    15 * time.Second,
	}
}

// Delay returns the backoff delay after the given attempt index.
func (c RetryConfig) Delay(attempt int) time.Duration {
	delay := time.Duration(float64(c.BaseDelay) * math.Pow(c.BackoffMultiplier, float64(attempt)))
	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// Operation is a fallible call producing a value.
type Operation[T any] func(ctx context.Context) (T, error)

// Result is the outcome of a resilient invocation. Err carries the
// last classified failure even when the fallback succeeded, so callers
// can surface degraded-data indicators.
type Result[T any] struct {
	Success      bool
	Data         T
	Err          *apperrors.AppError
	FromFallback bool
	RetryCount   int
}

// Invoker executes operations with timeout, retry, exponential
// backoff, and a per-operation circuit breaker. A live-call failure
// never escapes to the caller as a raw error; it is converted into a
// fallback result or a structured failure.
type Invoker struct {
	breakers *BreakerRegistry
	history  *apperrors.History
	logger   zerolog.Logger
}

// NewInvoker creates an invoker sharing the given breaker registry and
// error history.
func NewInvoker(breakers *BreakerRegistry, history *apperrors.History, logger zerolog.Logger) *Invoker {
	return &Invoker{
		breakers: breakers,
		history:  history,
		logger:   logger.With().Str("component", "resilient_invoker").Logger(),
	}
}

// Breakers exposes the registry for observability endpoints.
func (inv *Invoker) Breakers() *BreakerRegistry {
	return inv.breakers
}

// History exposes the recorded error ring.
func (inv *Invoker) History() *apperrors.History {
	return inv.history
}

// Execute runs operation under the invoker's resilience policy and
// delegates to fallback when the operation is exhausted or the breaker
// is open. A nil fallback yields a structured failure instead.
//
// For a single operation name, attempts are strictly sequential; the
// backoff sleep aborts early if ctx is cancelled.
func Execute[T any](ctx context.Context, inv *Invoker, operation string, op Operation[T], fallback Operation[T], cfg RetryConfig) Result[T] {
	var lastErr *apperrors.AppError
	retryCount := 0

	if inv.breakers.Allow(operation) {
		for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
			retryCount = attempt

			data, err := runAttempt(ctx, op, cfg.AttemptTimeout)
			if err == nil {
				inv.breakers.RecordSuccess(operation)
				return Result[T]{Success: true, Data: data, RetryCount: attempt}
			}

			lastErr = apperrors.Classify(err).WithContext(operation)
			inv.history.Record(lastErr, operation, fallback != nil)
			inv.breakers.RecordFailure(operation)

			inv.logger.Warn().
				Str("operation", operation).
				Int("attempt", attempt).
				Str("code", string(lastErr.Code)).
				Err(err).
				Msg("operation attempt failed")

			if !lastErr.Retryable() || attempt == cfg.MaxRetries {
				break
			}

			select {
			case <-time.After(cfg.Delay(attempt)):
			case <-ctx.Done():
				lastErr = apperrors.Classify(ctx.Err()).WithContext(operation)
				return fallbackResult(ctx, inv, operation, fallback, lastErr, retryCount)
			}
		}
	} else {
		lastErr = apperrors.NewServerError("circuit breaker open", nil).WithContext(operation)
		inv.history.Record(lastErr, operation, fallback != nil)
		inv.logger.Warn().Str("operation", operation).Msg("circuit open, skipping live call")
	}

	return fallbackResult(ctx, inv, operation, fallback, lastErr, retryCount)
}

func runAttempt[T any](ctx context.Context, op Operation[T], timeout time.Duration) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return op(ctx)
}

func fallbackResult[T any](ctx context.Context, inv *Invoker, operation string, fallback Operation[T], lastErr *apperrors.AppError, retryCount int) Result[T] {
	if fallback == nil {
		return Result[T]{Success: false, Err: lastErr, RetryCount: retryCount}
	}

	data, err := fallback(ctx)
	if err != nil {
		fbErr := apperrors.Classify(err).WithContext(operation + "_fallback")
		inv.history.Record(fbErr, operation+"_fallback", false)
		inv.logger.Error().Str("operation", operation).Err(err).Msg("fallback failed")
		return Result[T]{Success: false, Err: fbErr, RetryCount: retryCount}
	}

	return Result[T]{
		Success:      true,
		Data:         data,
		Err:          lastErr,
		FromFallback: true,
		RetryCount:   retryCount,
	}
}
