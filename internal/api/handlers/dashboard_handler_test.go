package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/api/handlers"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/application/services"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/offline"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/resilience"
	"github.com/zatekoja/hospital-ops-dashboard/backend/pkg/config"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

type scriptedProber struct {
	mu  sync.Mutex
	err error
}

func (p *scriptedProber) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *scriptedProber) Probe(ctx context.Context) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Millisecond, p.err
}

type dashboardFixture struct {
	handler *handlers.DashboardHandler
	monitor *offline.Monitor
	prober  *scriptedProber
	cache   *offline.ResultCache

	mu      sync.Mutex
	liveErr error
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	f := &dashboardFixture{prober: &scriptedProber{}}

	f.monitor = offline.NewMonitor(config.OfflineConfig{
		Enabled:             true,
		ProbeTimeout:        100 * time.Millisecond,
		RetryOnlineInterval: time.Hour,
	}, f.prober, zerolog.Nop())
	t.Cleanup(f.monitor.Destroy)

	f.cache = offline.NewResultCache(time.Minute)
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

	service := services.NewDashboardDataService(f.monitor, f.cache, invoker, retryCfg, zerolog.Nop())
	service.Register(services.Resource{
		Key: services.ResourceDashboardSummary,
		Live: func(ctx context.Context) (any, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.liveErr != nil {
				return nil, f.liveErr
			}
			return map[string]int{"total_patients": 248}, nil
		},
		Fallback: func(ctx context.Context) (any, error) {
			return map[string]int{"total_patients": 200}, nil
		},
		TTL: time.Minute,
	})

	f.handler = handlers.NewDashboardHandler(service, f.monitor, invoker)
	return f
}

func (f *dashboardFixture) setLiveErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.liveErr = err
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestGetSummary_Live(t *testing.T) {
	f := newDashboardFixture(t)

	rec := httptest.NewRecorder()
	f.handler.GetSummary(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "live", rec.Header().Get("X-Data-Source"))
	assert.Equal(t, "0", rec.Header().Get("X-Retry-Count"))

	body := decodeBody(t, rec)
	assert.Equal(t, "live", body["source"])
}

func TestGetSummary_FallbackOnLiveFailure(t *testing.T) {
	f := newDashboardFixture(t)
	f.setLiveErr(apperrors.NewServerError("upstream down", nil))

	rec := httptest.NewRecorder()
	f.handler.GetSummary(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fallback", rec.Header().Get("X-Data-Source"))
	assert.Equal(t, "1", rec.Header().Get("X-Retry-Count"))
}

func TestGetSummary_OfflineServesCache(t *testing.T) {
	f := newDashboardFixture(t)
	f.cache.Store(services.ResourceDashboardSummary, map[string]int{"total_patients": 300}, time.Minute)
	f.monitor.MarkOffline()

	rec := httptest.NewRecorder()
	f.handler.GetSummary(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cache", rec.Header().Get("X-Data-Source"))
}

func TestGetNetworkStatus(t *testing.T) {
	f := newDashboardFixture(t)
	f.monitor.MarkOffline()

	rec := httptest.NewRecorder()
	f.handler.GetNetworkStatus(rec, httptest.NewRequest(http.MethodGet, "/api/network/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["offline_mode"])
}

func TestCheckNetwork(t *testing.T) {
	f := newDashboardFixture(t)
	f.monitor.MarkOffline()

	rec := httptest.NewRecorder()
	f.handler.CheckNetwork(rec, httptest.NewRequest(http.MethodPost, "/api/network/check", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["online"])
	assert.False(t, f.monitor.IsOfflineMode())
}

func TestGetHealth_Unhealthy(t *testing.T) {
	f := newDashboardFixture(t)
	f.prober.setErr(context.DeadlineExceeded)

	rec := httptest.NewRecorder()
	f.handler.GetHealth(rec, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["healthy"])

	// The failed probe also flipped the monitor offline
	assert.True(t, f.monitor.IsOfflineMode())
}

func TestGetErrorHistory(t *testing.T) {
	f := newDashboardFixture(t)
	f.setLiveErr(apperrors.NewServerError("upstream down", nil))

	rec := httptest.NewRecorder()
	f.handler.GetSummary(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))

	rec = httptest.NewRecorder()
	f.handler.GetErrorHistory(rec, httptest.NewRequest(http.MethodGet, "/api/system/errors?limit=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"]) // initial attempt + 1 retry
}

func TestGetBreakers(t *testing.T) {
	f := newDashboardFixture(t)

	rec := httptest.NewRecorder()
	f.handler.GetBreakers(rec, httptest.NewRequest(http.MethodGet, "/api/system/breakers", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	breakers, ok := body["breakers"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, breakers, services.ResourceDashboardSummary)
	require.Contains(t, breakers, services.ResourceAlerts)

	entry := breakers[services.ResourceDashboardSummary].(map[string]any)
	assert.Equal(t, "closed", entry["state"])
	assert.Equal(t, float64(0), entry["failures"])
}

func TestCleanupCache(t *testing.T) {
	f := newDashboardFixture(t)
	f.cache.Store("stale", "x", time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	rec := httptest.NewRecorder()
	f.handler.CleanupCache(rec, httptest.NewRequest(http.MethodPost, "/api/system/cache/cleanup", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["removed"])
}
