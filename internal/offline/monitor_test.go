package offline_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/offline"
	"github.com/zatekoja/hospital-ops-dashboard/backend/pkg/config"
)

// fakeProber lets tests script probe outcomes without a real server.
type fakeProber struct {
	mu  sync.Mutex
	rtt time.Duration
	err error
}

func (p *fakeProber) set(rtt time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rtt, p.err = rtt, err
}

func (p *fakeProber) Probe(ctx context.Context) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rtt, p.err
}

func testConfig() config.OfflineConfig {
	return config.OfflineConfig{
		Enabled:              true,
		ProbeTimeout:         100 * time.Millisecond,
		RetryOnlineInterval:  10 * time.Millisecond,
		SlowDetectionEnabled: true,
		SlowThreshold:        50 * time.Millisecond,
	}
}

func TestMonitor_CheckNowOnline(t *testing.T) {
	prober := &fakeProber{rtt: time.Millisecond}
	monitor := offline.NewMonitor(testConfig(), prober, zerolog.Nop())
	defer monitor.Destroy()

	assert.True(t, monitor.CheckNow(context.Background()))

	status := monitor.Status()
	assert.True(t, status.IsOnline)
	assert.False(t, status.IsSlowConnection)
	assert.False(t, monitor.IsOfflineMode())
	require.NotNil(t, status.LastOnlineTime)
}

func TestMonitor_CheckNowOffline(t *testing.T) {
	prober := &fakeProber{err: context.DeadlineExceeded}
	monitor := offline.NewMonitor(testConfig(), prober, zerolog.Nop())
	defer monitor.Destroy()

	assert.False(t, monitor.CheckNow(context.Background()))

	status := monitor.Status()
	assert.False(t, status.IsOnline)
	assert.True(t, monitor.IsOfflineMode())
	require.NotNil(t, status.LastOfflineTime)
}

func TestMonitor_SlowConnectionCountsAsOffline(t *testing.T) {
	prober := &fakeProber{rtt: 200 * time.Millisecond}
	monitor := offline.NewMonitor(testConfig(), prober, zerolog.Nop())
	defer monitor.Destroy()

	assert.True(t, monitor.CheckNow(context.Background()))

	status := monitor.Status()
	assert.True(t, status.IsOnline)
	assert.True(t, status.IsSlowConnection)
	assert.True(t, monitor.IsOfflineMode())
}

func TestMonitor_SlowDetectionDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.SlowDetectionEnabled = false

	prober := &fakeProber{rtt: 200 * time.Millisecond}
	monitor := offline.NewMonitor(cfg, prober, zerolog.Nop())
	defer monitor.Destroy()

	monitor.CheckNow(context.Background())
	assert.False(t, monitor.IsOfflineMode())
}

func TestMonitor_DisabledNeverOffline(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	prober := &fakeProber{err: context.DeadlineExceeded}
	monitor := offline.NewMonitor(cfg, prober, zerolog.Nop())
	defer monitor.Destroy()

	monitor.CheckNow(context.Background())
	assert.False(t, monitor.IsOfflineMode())
}

func TestMonitor_SubscribeImmediateAndOnChange(t *testing.T) {
	prober := &fakeProber{err: context.DeadlineExceeded}
	monitor := offline.NewMonitor(testConfig(), prober, zerolog.Nop())
	defer monitor.Destroy()

	var mu sync.Mutex
	var seen []bool
	unsubscribe := monitor.Subscribe(func(status entities.NetworkStatus) {
		mu.Lock()
		seen = append(seen, status.IsOnline)
		mu.Unlock()
	})

	// Immediate snapshot reflects the initial optimistic state
	mu.Lock()
	require.Len(t, seen, 1)
	assert.True(t, seen[0])
	mu.Unlock()

	monitor.CheckNow(context.Background())

	mu.Lock()
	require.Len(t, seen, 2)
	assert.False(t, seen[1])
	mu.Unlock()

	unsubscribe()
	prober.set(time.Millisecond, nil)
	monitor.CheckNow(context.Background())

	mu.Lock()
	assert.Len(t, seen, 2)
	mu.Unlock()
}

func TestMonitor_RetryLoopRecovers(t *testing.T) {
	prober := &fakeProber{err: context.DeadlineExceeded}
	monitor := offline.NewMonitor(testConfig(), prober, zerolog.Nop())
	defer monitor.Destroy()

	monitor.CheckNow(context.Background())
	require.True(t, monitor.IsOfflineMode())

	// Backend comes back; the retry loop should notice on its own
	prober.set(time.Millisecond, nil)

	assert.Eventually(t, func() bool {
		return !monitor.IsOfflineMode()
	}, time.Second, 5*time.Millisecond)
}

func TestMonitor_HTTPProber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := offline.NewHTTPProber(server.URL, time.Second)
	rtt, err := prober.Probe(context.Background())
	require.NoError(t, err)
	assert.Greater(t, rtt, time.Duration(0))
}

func TestMonitor_HTTPProberNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	prober := offline.NewHTTPProber(server.URL, time.Second)
	_, err := prober.Probe(context.Background())
	assert.Error(t, err)
}

func TestMonitor_MarkOnlineStopsRetryLoop(t *testing.T) {
	prober := &fakeProber{err: context.DeadlineExceeded}
	monitor := offline.NewMonitor(testConfig(), prober, zerolog.Nop())
	defer monitor.Destroy()

	monitor.MarkOffline()
	require.True(t, monitor.IsOfflineMode())

	monitor.MarkOnline()
	assert.False(t, monitor.IsOfflineMode())
	assert.True(t, monitor.Status().IsOnline)
}
