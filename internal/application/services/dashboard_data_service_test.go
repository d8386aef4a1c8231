package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/application/services"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/offline"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/resilience"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

// fakeGate scripts connectivity state without a real monitor.
type fakeGate struct {
	offline bool
	probeOK bool
}

func (g *fakeGate) IsOfflineMode() bool               { return g.offline }
func (g *fakeGate) CheckNow(ctx context.Context) bool { return g.probeOK }

type fixture struct {
	gate    *fakeGate
	cache   *offline.ResultCache
	service *services.DashboardDataService

	liveCalls     int
	fallbackCalls int
}

func newFixture(t *testing.T, live services.Provider, liveErr error) *fixture {
	t.Helper()

	f := &fixture{
		gate:  &fakeGate{probeOK: true},
		cache: offline.NewResultCache(time.Minute),
	}

	invoker := resilience.NewInvoker(
		resilience.NewBreakerRegistry(10, time.Minute),
		apperrors.NewHistory(100),
		zerolog.Nop(),
	)
	retryCfg := resilience.RetryConfig{
		MaxRetries:        1,
		BaseDelay:         time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2,
		AttemptTimeout:    time.Second,
	}

	f.service = services.NewDashboardDataService(f.gate, f.cache, invoker, retryCfg, zerolog.Nop())
	f.service.Register(services.Resource{
		Key: services.ResourceDashboardSummary,
		Live: func(ctx context.Context) (any, error) {
			f.liveCalls++
			if live != nil {
				return live(ctx)
			}
			return nil, liveErr
		},
		Fallback: func(ctx context.Context) (any, error) {
			f.fallbackCalls++
			return "synthetic", nil
		},
		TTL: time.Minute,
	})

	return f
}

func liveOK(value any) services.Provider {
	return func(ctx context.Context) (any, error) { return value, nil }
}

func TestGet_OnlineLiveSuccessCachesResult(t *testing.T) {
	f := newFixture(t, liveOK("live"), nil)

	result := f.service.Get(context.Background(), services.ResourceDashboardSummary)

	require.True(t, result.Success)
	assert.Equal(t, "live", result.Data)
	assert.Equal(t, entities.DataSourceLive, result.Source)
	assert.Equal(t, 0, result.RetryCount)

	cached, ok := f.cache.Read(services.ResourceDashboardSummary)
	require.True(t, ok)
	assert.Equal(t, "live", cached)
}

func TestGet_OnlineRetriesThenLiveSuccess(t *testing.T) {
	gate := &fakeGate{probeOK: true}
	cache := offline.NewResultCache(time.Minute)
	breakers := resilience.NewBreakerRegistry(10, time.Minute)
	invoker := resilience.NewInvoker(breakers, apperrors.NewHistory(100), zerolog.Nop())
	retryCfg := resilience.RetryConfig{
		MaxRetries:        3,
		BaseDelay:         time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2,
		AttemptTimeout:    time.Second,
	}

	service := services.NewDashboardDataService(gate, cache, invoker, retryCfg, zerolog.Nop())

	calls := 0
	var live services.Provider = func(ctx context.Context) (any, error) {
		calls++
		if calls < 4 {
			return nil, apperrors.NewNetworkError("connection refused", nil)
		}
		return "live", nil
	}
	service.Register(services.Resource{
		Key:      services.ResourceDashboardSummary,
		Live:     live,
		Fallback: func(ctx context.Context) (any, error) { return "synthetic", nil },
		TTL:      time.Minute,
	})

	result := service.Get(context.Background(), services.ResourceDashboardSummary)

	require.True(t, result.Success)
	assert.Equal(t, "live", result.Data)
	assert.Equal(t, entities.DataSourceLive, result.Source)
	assert.Equal(t, 3, result.RetryCount)
	assert.Equal(t, 4, calls)

	// The eventual success resets the breaker and refreshes the cache
	assert.Equal(t, resilience.BreakerClosed, breakers.State(services.ResourceDashboardSummary))
	cached, ok := cache.Read(services.ResourceDashboardSummary)
	require.True(t, ok)
	assert.Equal(t, "live", cached)
}

func TestGet_OpenBreakerServesFallbackWithoutLiveCall(t *testing.T) {
	gate := &fakeGate{probeOK: true}
	cache := offline.NewResultCache(time.Minute)
	breakers := resilience.NewBreakerRegistry(1, time.Minute)
	invoker := resilience.NewInvoker(breakers, apperrors.NewHistory(100), zerolog.Nop())
	retryCfg := resilience.RetryConfig{
		MaxRetries:        0,
		BaseDelay:         time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2,
		AttemptTimeout:    time.Second,
	}
	service := services.NewDashboardDataService(gate, cache, invoker, retryCfg, zerolog.Nop())

	liveCalls := 0
	service.Register(services.Resource{
		Key: services.ResourceDashboardSummary,
		Live: func(ctx context.Context) (any, error) {
			liveCalls++
			return nil, apperrors.NewServerError("upstream down", nil)
		},
		Fallback: func(ctx context.Context) (any, error) { return "synthetic", nil },
		TTL:      time.Minute,
	})

	// First call fails and trips the single-failure breaker
	service.Get(context.Background(), services.ResourceDashboardSummary)
	require.Equal(t, resilience.BreakerOpen, breakers.State(services.ResourceDashboardSummary))
	require.Equal(t, 1, liveCalls)

	result := service.Get(context.Background(), services.ResourceDashboardSummary)

	require.True(t, result.Success)
	assert.Equal(t, "synthetic", result.Data)
	assert.Equal(t, entities.DataSourceFallback, result.Source)
	assert.Equal(t, 0, result.RetryCount)
	assert.Equal(t, 1, liveCalls)
}

func TestGet_OnlineFailureFallsBackAndSkipsCache(t *testing.T) {
	f := newFixture(t, nil, apperrors.NewServerError("upstream down", nil))

	result := f.service.Get(context.Background(), services.ResourceDashboardSummary)

	require.True(t, result.Success)
	assert.Equal(t, "synthetic", result.Data)
	assert.Equal(t, entities.DataSourceFallback, result.Source)
	assert.Equal(t, 1, result.RetryCount)
	assert.Equal(t, 2, f.liveCalls) // initial attempt + 1 retry

	// Degraded-data indicator: last live failure travels with the result
	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrorCodeServer, result.Err.Code)

	// Synthetic data must never be mistaken for real data later
	_, ok := f.cache.Read(services.ResourceDashboardSummary)
	assert.False(t, ok)
}

func TestGet_OfflineServesCache(t *testing.T) {
	f := newFixture(t, liveOK("live"), nil)
	f.cache.Store(services.ResourceDashboardSummary, "cached", time.Minute)
	f.gate.offline = true

	result := f.service.Get(context.Background(), services.ResourceDashboardSummary)

	require.True(t, result.Success)
	assert.Equal(t, "cached", result.Data)
	assert.Equal(t, entities.DataSourceCache, result.Source)
	assert.Equal(t, 0, f.liveCalls)
	assert.Equal(t, 0, f.fallbackCalls)
}

func TestGet_OfflineEmptyCacheServesFallback(t *testing.T) {
	f := newFixture(t, liveOK("live"), nil)
	f.gate.offline = true

	result := f.service.Get(context.Background(), services.ResourceDashboardSummary)

	require.True(t, result.Success)
	assert.Equal(t, "synthetic", result.Data)
	assert.Equal(t, entities.DataSourceFallback, result.Source)
	assert.Equal(t, 0, f.liveCalls)

	_, ok := f.cache.Read(services.ResourceDashboardSummary)
	assert.False(t, ok)
}

func TestGet_OfflineExpiredCacheFallsBack(t *testing.T) {
	f := newFixture(t, liveOK("live"), nil)
	f.cache.Store(services.ResourceDashboardSummary, "stale", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	f.gate.offline = true

	result := f.service.Get(context.Background(), services.ResourceDashboardSummary)

	require.True(t, result.Success)
	assert.Equal(t, "synthetic", result.Data)
	assert.Equal(t, entities.DataSourceFallback, result.Source)
}

func TestGet_UnknownResource(t *testing.T) {
	f := newFixture(t, liveOK("live"), nil)

	result := f.service.Get(context.Background(), "no_such_resource")

	require.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrorCodeNotFound, result.Err.Code)
}

func TestRefreshAll_OnlineRepopulatesCache(t *testing.T) {
	f := newFixture(t, liveOK("live"), nil)
	f.cache.Store(services.ResourceDashboardSummary, "stale", time.Minute)

	f.service.RefreshAll(context.Background())

	assert.Equal(t, 1, f.liveCalls)
	cached, ok := f.cache.Read(services.ResourceDashboardSummary)
	require.True(t, ok)
	assert.Equal(t, "live", cached)
}

func TestRefreshAll_OfflineIsNoOp(t *testing.T) {
	f := newFixture(t, liveOK("live"), nil)
	f.cache.Store(services.ResourceDashboardSummary, "cached", time.Minute)
	f.gate.offline = true

	f.service.RefreshAll(context.Background())

	assert.Equal(t, 0, f.liveCalls)
	// Cache left intact for offline reads
	cached, ok := f.cache.Read(services.ResourceDashboardSummary)
	require.True(t, ok)
	assert.Equal(t, "cached", cached)
}

func TestHealthCheck_Online(t *testing.T) {
	f := newFixture(t, liveOK("live"), nil)

	report := f.service.HealthCheck(context.Background())

	require.Contains(t, report, services.ResourceDashboardSummary)
	assert.True(t, report[services.ResourceDashboardSummary])
	assert.Equal(t, 1, f.liveCalls)
}

func TestHealthCheck_ProbeFailureMarksAllUnhealthy(t *testing.T) {
	f := newFixture(t, liveOK("live"), nil)
	f.gate.probeOK = false

	report := f.service.HealthCheck(context.Background())

	assert.False(t, report[services.ResourceDashboardSummary])
	assert.Equal(t, 0, f.liveCalls)
}

func TestHealthCheck_LiveFailureWithoutRetryStorm(t *testing.T) {
	f := newFixture(t, nil, apperrors.NewServerError("upstream down", nil))

	report := f.service.HealthCheck(context.Background())

	assert.False(t, report[services.ResourceDashboardSummary])
	// Retries disabled for health probes
	assert.Equal(t, 1, f.liveCalls)
	assert.Equal(t, 0, f.fallbackCalls)
}
