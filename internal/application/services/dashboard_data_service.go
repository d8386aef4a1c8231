package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/offline"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/resilience"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

// Well-known resource keys. Each key doubles as the circuit breaker
// context and the cache key for that resource.
const (
	ResourceDashboardSummary = "dashboard_summary"
	ResourcePatients         = "patients"
	ResourceStaff            = "staff"
	ResourceBeds             = "beds"
	ResourceOxygenStations   = "oxygen_stations"
	ResourceAppointments     = "appointments"
	ResourceAlerts           = "alerts"
)

// Provider produces the value for a resource, either from the live
// backend or synthetically. It is an alias, not a defined type: the
// invoker's type parameter must infer through it.
type Provider = resilience.Operation[any]

// Resource binds a key to its live call, its fallback, and the cache
// TTL for live results.
type Resource struct {
	Key      string
	Live     Provider
	Fallback Provider
	TTL      time.Duration
}

// DataResult is a resolved value plus provenance metadata.
type DataResult struct {
	Data       any                 `json:"data"`
	Source     entities.DataSource `json:"source"`
	Success    bool                `json:"success"`
	Err        *apperrors.AppError `json:"-"`
	RetryCount int                 `json:"retry_count"`
}

// OfflineGate is the connectivity decision the facade consults.
type OfflineGate interface {
	IsOfflineMode() bool
	CheckNow(ctx context.Context) bool
}

// DashboardDataService is the single entry point the API layer calls
// per logical resource. It composes the network monitor, the result
// cache, the resilient invoker, and the synthetic fallback providers.
type DashboardDataService struct {
	monitor  OfflineGate
	cache    *offline.ResultCache
	invoker  *resilience.Invoker
	retryCfg resilience.RetryConfig
	logger   zerolog.Logger

	mu        sync.Mutex
	resources map[string]Resource
	order     []string
}

// NewDashboardDataService creates the facade.
func NewDashboardDataService(
	monitor OfflineGate,
	cache *offline.ResultCache,
	invoker *resilience.Invoker,
	retryCfg resilience.RetryConfig,
	logger zerolog.Logger,
) *DashboardDataService {
	return &DashboardDataService{
		monitor:   monitor,
		cache:     cache,
		invoker:   invoker,
		retryCfg:  retryCfg,
		logger:    logger.With().Str("component", "dashboard_data").Logger(),
		resources: make(map[string]Resource),
	}
}

// Register makes a resource available by key. Registering the same key
// twice replaces the binding.
func (s *DashboardDataService) Register(r Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.resources[r.Key]; !exists {
		s.order = append(s.order, r.Key)
	}
	s.resources[r.Key] = r
}

// Get resolves a registered resource by key.
func (s *DashboardDataService) Get(ctx context.Context, key string) *DataResult {
	s.mu.Lock()
	resource, ok := s.resources[key]
	s.mu.Unlock()

	if !ok {
		return &DataResult{
			Success: false,
			Err:     apperrors.NewNotFoundError("unknown resource: " + key),
		}
	}

	return s.Fetch(ctx, resource)
}

// Fetch resolves a resource: offline callers get cached data when a
// valid entry exists and synthetic data otherwise; online callers go
// through the resilient invoker, and live results refresh the cache.
func (s *DashboardDataService) Fetch(ctx context.Context, resource Resource) *DataResult {
	if s.monitor.IsOfflineMode() {
		if data, ok := s.cache.Read(resource.Key); ok {
			s.logger.Debug().Str("resource", resource.Key).Msg("offline, serving cached data")
			return &DataResult{Data: data, Source: entities.DataSourceCache, Success: true}
		}

		data, err := resource.Fallback(ctx)
		if err != nil {
			fbErr := apperrors.Classify(err).WithContext(resource.Key + "_fallback")
			return &DataResult{Success: false, Source: entities.DataSourceFallback, Err: fbErr}
		}
		s.logger.Debug().Str("resource", resource.Key).Msg("offline, serving synthetic data")
		return &DataResult{Data: data, Source: entities.DataSourceFallback, Success: true}
	}

	result := resilience.Execute(ctx, s.invoker, resource.Key, resource.Live, resource.Fallback, s.retryCfg)
	if !result.Success {
		return &DataResult{
			Source:     entities.DataSourceFallback,
			Success:    false,
			Err:        result.Err,
			RetryCount: result.RetryCount,
		}
	}

	source := entities.DataSourceLive
	if result.FromFallback {
		source = entities.DataSourceFallback
	} else {
		s.cache.Store(resource.Key, result.Data, resource.TTL)
	}

	return &DataResult{
		Data:       result.Data,
		Source:     source,
		Success:    true,
		Err:        result.Err,
		RetryCount: result.RetryCount,
	}
}

// RefreshAll clears the cache and re-resolves every registered
// resource. While offline it only logs and returns.
func (s *DashboardDataService) RefreshAll(ctx context.Context) {
	if s.monitor.IsOfflineMode() {
		s.logger.Info().Msg("refresh requested while offline, skipping")
		return
	}

	s.cache.Clear()

	for _, key := range s.resourceKeys() {
		result := s.Get(ctx, key)
		s.logger.Info().
			Str("resource", key).
			Str("source", string(result.Source)).
			Bool("success", result.Success).
			Msg("resource refreshed")
	}
}

// HealthCheck probes connectivity and then attempts each resource's
// live call once, with retries disabled so a dead backend costs one
// failure per resource, not a retry storm.
func (s *DashboardDataService) HealthCheck(ctx context.Context) map[string]bool {
	online := s.monitor.CheckNow(ctx)

	report := make(map[string]bool)
	probeCfg := s.retryCfg
	probeCfg.MaxRetries = 0

	for _, key := range s.resourceKeys() {
		if !online {
			report[key] = false
			continue
		}

		s.mu.Lock()
		resource := s.resources[key]
		s.mu.Unlock()

		result := resilience.Execute(ctx, s.invoker, key, resource.Live, nil, probeCfg)
		report[key] = result.Success
	}

	return report
}

// CacheStats exposes result cache statistics for the status endpoint.
func (s *DashboardDataService) CacheStats() offline.CacheStats {
	return s.cache.Stats()
}

// CleanupCache sweeps expired entries, typically on resuming online.
func (s *DashboardDataService) CleanupCache() int {
	return s.cache.Cleanup()
}

func (s *DashboardDataService) resourceKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}
