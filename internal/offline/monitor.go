package offline

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/pkg/config"
)

// Listener receives network status snapshots. It is invoked once on
// subscription and again after every change.
type Listener func(entities.NetworkStatus)

// Monitor tracks backend connectivity. It probes a liveness endpoint,
// classifies slow connections, and while offline re-probes on a fixed
// interval until the backend answers again.
//
// Probe failures never surface as errors to callers; they only update
// state and schedule the next probe.
type Monitor struct {
	cfg    config.OfflineConfig
	prober Prober
	logger zerolog.Logger

	mu        sync.Mutex
	status    entities.NetworkStatus
	listeners map[int]Listener
	nextID    int
	stopRetry chan struct{}
	destroyed bool
}

// NewMonitor creates a monitor. Start must be called before the
// monitor probes anything.
func NewMonitor(cfg config.OfflineConfig, prober Prober, logger zerolog.Logger) *Monitor {
	return &Monitor{
		cfg:    cfg,
		prober: prober,
		logger: logger.With().Str("component", "network_monitor").Logger(),
		status: entities.NetworkStatus{
			IsOnline:       true,
			ConnectionType: entities.ConnectionTypeUnknown,
			EffectiveType:  "unknown",
		},
		listeners: make(map[int]Listener),
	}
}

// Start runs an initial probe to establish the real state.
func (m *Monitor) Start(ctx context.Context) {
	m.CheckNow(ctx)
}

// Status returns the current snapshot.
func (m *Monitor) Status() entities.NetworkStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// IsOfflineMode is the single predicate the rest of the system uses to
// decide between live and fallback data.
func (m *Monitor) IsOfflineMode() bool {
	if !m.cfg.Enabled {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.status.IsOnline {
		return true
	}
	return m.cfg.SlowDetectionEnabled && m.status.IsSlowConnection
}

// Subscribe registers a listener and returns its unsubscribe function.
// The listener is called immediately with the current snapshot.
func (m *Monitor) Subscribe(fn Listener) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	snapshot := m.status
	m.mu.Unlock()

	fn(snapshot)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// CheckNow runs a single probe and updates state from the result.
func (m *Monitor) CheckNow(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.cfg.ProbeTimeout)
	defer cancel()

	rtt, err := m.prober.Probe(probeCtx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("connectivity probe failed")
		m.MarkOffline()
		return false
	}

	m.markOnline(rtt)
	return true
}

// MarkOnline records an online signal from the platform. A probe is
// not implied; callers wanting RTT classification use CheckNow.
func (m *Monitor) MarkOnline() {
	m.markOnline(0)
}

func (m *Monitor) markOnline(rtt time.Duration) {
	now := time.Now()

	m.mu.Lock()
	changed := !m.status.IsOnline
	m.status.IsOnline = true
	m.status.LastOnlineTime = &now

	slow := rtt > 0 && rtt > m.cfg.SlowThreshold
	if m.status.IsSlowConnection != slow {
		m.status.IsSlowConnection = slow
		changed = true
	}

	if m.stopRetry != nil {
		close(m.stopRetry)
		m.stopRetry = nil
	}
	snapshot := m.status
	listeners := m.snapshotListenersLocked()
	m.mu.Unlock()

	if changed {
		m.logger.Info().Dur("rtt", rtt).Bool("slow", slow).Msg("backend reachable")
		notify(listeners, snapshot)
	}
}

// MarkOffline records an offline signal and starts the re-probe loop.
func (m *Monitor) MarkOffline() {
	now := time.Now()

	m.mu.Lock()
	changed := m.status.IsOnline
	m.status.IsOnline = false
	m.status.LastOfflineTime = &now

	var stop chan struct{}
	if m.stopRetry == nil && !m.destroyed {
		stop = make(chan struct{})
		m.stopRetry = stop
	}
	snapshot := m.status
	listeners := m.snapshotListenersLocked()
	m.mu.Unlock()

	if changed {
		m.logger.Warn().Msg("backend unreachable, entering offline mode")
		notify(listeners, snapshot)
	}

	if stop != nil {
		go m.retryLoop(stop)
	}
}

// retryLoop re-probes on a fixed interval until a probe succeeds or
// the loop is stopped.
func (m *Monitor) retryLoop(stop chan struct{}) {
	ticker := time.NewTicker(m.cfg.RetryOnlineInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), m.cfg.ProbeTimeout)
			rtt, err := m.prober.Probe(probeCtx)
			cancel()

			if err != nil {
				m.logger.Debug().Err(err).Msg("re-probe failed")
				continue
			}

			m.markOnline(rtt)
			return
		}
	}
}

// Destroy stops the retry loop and drops all listeners. The monitor
// must not be reused afterwards.
func (m *Monitor) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.destroyed = true
	if m.stopRetry != nil {
		close(m.stopRetry)
		m.stopRetry = nil
	}
	m.listeners = make(map[int]Listener)
}

func (m *Monitor) snapshotListenersLocked() []Listener {
	out := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		out = append(out, fn)
	}
	return out
}

// Listeners run outside the monitor lock. Ordering across listeners
// is unspecified.
func notify(listeners []Listener, snapshot entities.NetworkStatus) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}
