package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/resilience"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

func fastConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxRetries:        3,
		BaseDelay:         time.Millisecond,
		MaxDelay:          10 * time.Millisecond,
		BackoffMultiplier: 2,
		AttemptTimeout:    time.Second,
	}
}

func newInvoker(threshold int, cooldown time.Duration) *resilience.Invoker {
	return resilience.NewInvoker(
		resilience.NewBreakerRegistry(threshold, cooldown),
		apperrors.NewHistory(100),
		zerolog.Nop(),
	)
}

func TestRetryConfig_DelaySchedule(t *testing.T) {
	cfg := resilience.DefaultRetryConfig()

	assert.Equal(t, time.Second, cfg.Delay(0))
	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	assert.Equal(t, 8*time.Second, cfg.Delay(3))
	// Capped at MaxDelay
	assert.Equal(t, 10*time.Second, cfg.Delay(4))
	assert.Equal(t, 10*time.Second, cfg.Delay(10))
}

func TestExecute_SuccessFirstAttempt(t *testing.T) {
	inv := newInvoker(3, time.Minute)

	result := resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) { return "live", nil },
		nil, fastConfig())

	require.True(t, result.Success)
	assert.Equal(t, "live", result.Data)
	assert.False(t, result.FromFallback)
	assert.Equal(t, 0, result.RetryCount)
	assert.Nil(t, result.Err)
}

func TestExecute_SuccessAfterRetries(t *testing.T) {
	inv := newInvoker(10, time.Minute)

	calls := 0
	result := resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) {
			calls++
			if calls < 4 {
				return "", apperrors.NewNetworkError("connection refused", nil)
			}
			return "live", nil
		},
		nil, fastConfig())

	require.True(t, result.Success)
	assert.Equal(t, "live", result.Data)
	assert.False(t, result.FromFallback)
	// Succeeded on the fourth attempt, i.e. after three retries
	assert.Equal(t, 3, result.RetryCount)
	assert.Equal(t, 4, calls)
}

func TestExecute_ExhaustedFallsBack(t *testing.T) {
	inv := newInvoker(10, time.Minute)

	calls := 0
	result := resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) {
			calls++
			return "", apperrors.NewServerError("upstream down", nil)
		},
		func(ctx context.Context) (string, error) { return "synthetic", nil },
		fastConfig())

	require.True(t, result.Success)
	assert.Equal(t, "synthetic", result.Data)
	assert.True(t, result.FromFallback)
	assert.Equal(t, 4, calls) // initial attempt + 3 retries
	assert.Equal(t, 3, result.RetryCount)

	// The last live failure is retained for degraded-data indicators
	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrorCodeServer, result.Err.Code)
}

func TestExecute_NonRetryableSkipsRetries(t *testing.T) {
	inv := newInvoker(10, time.Minute)

	calls := 0
	result := resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) {
			calls++
			return "", apperrors.NewAuthError("token expired")
		},
		func(ctx context.Context) (string, error) { return "synthetic", nil },
		fastConfig())

	require.True(t, result.Success)
	assert.True(t, result.FromFallback)
	assert.Equal(t, 1, calls)
	assert.Equal(t, apperrors.ErrorCodeAuth, result.Err.Code)
}

func TestExecute_NilFallbackFails(t *testing.T) {
	inv := newInvoker(10, time.Minute)

	result := resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) {
			return "", apperrors.NewNotFoundError("no such record")
		},
		nil, fastConfig())

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrorCodeNotFound, result.Err.Code)
	assert.Equal(t, "fetch", result.Err.Context)
}

func TestExecute_OpenBreakerShortCircuits(t *testing.T) {
	inv := newInvoker(2, time.Minute)
	cfg := fastConfig()
	cfg.MaxRetries = 0

	fail := func(ctx context.Context) (string, error) {
		return "", apperrors.NewServerError("upstream down", nil)
	}

	resilience.Execute(context.Background(), inv, "fetch", fail, nil, cfg)
	resilience.Execute(context.Background(), inv, "fetch", fail, nil, cfg)
	require.Equal(t, resilience.BreakerOpen, inv.Breakers().State("fetch"))

	calls := 0
	result := resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) {
			calls++
			return "live", nil
		},
		func(ctx context.Context) (string, error) { return "synthetic", nil },
		cfg)

	// Live call never ran; fallback served with zero retries
	assert.Equal(t, 0, calls)
	require.True(t, result.Success)
	assert.True(t, result.FromFallback)
	assert.Equal(t, 0, result.RetryCount)
}

func TestExecute_HalfOpenRecovery(t *testing.T) {
	inv := newInvoker(1, 20*time.Millisecond)
	cfg := fastConfig()
	cfg.MaxRetries = 0

	resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) {
			return "", apperrors.NewServerError("upstream down", nil)
		},
		nil, cfg)
	require.Equal(t, resilience.BreakerOpen, inv.Breakers().State("fetch"))

	time.Sleep(30 * time.Millisecond)

	result := resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) { return "live", nil },
		nil, cfg)

	require.True(t, result.Success)
	assert.False(t, result.FromFallback)
	assert.Equal(t, resilience.BreakerClosed, inv.Breakers().State("fetch"))
}

func TestExecute_FallbackFailure(t *testing.T) {
	inv := newInvoker(10, time.Minute)
	cfg := fastConfig()
	cfg.MaxRetries = 0

	result := resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) {
			return "", apperrors.NewServerError("upstream down", nil)
		},
		func(ctx context.Context) (string, error) {
			return "", errors.New("generator broken")
		},
		cfg)

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, "fetch_fallback", result.Err.Context)
}

func TestExecute_AttemptTimeout(t *testing.T) {
	inv := newInvoker(10, time.Minute)
	cfg := fastConfig()
	cfg.MaxRetries = 0
	cfg.AttemptTimeout = 10 * time.Millisecond

	result := resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) {
			select {
			case <-time.After(time.Second):
				return "too late", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
		nil, cfg)

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrorCodeNetwork, result.Err.Code)
}

func TestExecute_RecordsHistory(t *testing.T) {
	inv := newInvoker(10, time.Minute)
	cfg := fastConfig()
	cfg.MaxRetries = 1

	resilience.Execute(context.Background(), inv, "fetch",
		func(ctx context.Context) (string, error) {
			return "", apperrors.NewRateLimitError("throttled")
		},
		func(ctx context.Context) (string, error) { return "synthetic", nil },
		cfg)

	records := inv.History().Snapshot()
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, apperrors.ErrorCodeRateLimit, rec.Code)
		assert.Equal(t, "fetch", rec.Context)
		assert.True(t, rec.Retryable)
		assert.True(t, rec.FallbackAvailable)
	}
}

func TestExecute_ContextCancelAbortsBackoff(t *testing.T) {
	inv := newInvoker(10, time.Minute)
	cfg := fastConfig()
	cfg.BaseDelay = time.Minute
	cfg.MaxDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	result := resilience.Execute(ctx, inv, "fetch",
		func(ctx context.Context) (string, error) {
			return "", apperrors.NewServerError("upstream down", nil)
		},
		func(ctx context.Context) (string, error) { return "synthetic", nil },
		cfg)

	assert.Less(t, time.Since(start), time.Second)
	require.True(t, result.Success)
	assert.True(t, result.FromFallback)
}
