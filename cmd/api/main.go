package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/adapters/cache"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/adapters/database"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/adapters/events"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/api/handlers"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/api/middleware"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/api/routes"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/application/services"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/providers"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/fallback"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/infrastructure/observability"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/offline"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/resilience"
	"github.com/zatekoja/hospital-ops-dashboard/backend/pkg/config"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

// Synthetic batch sizes used when the live backend is unreachable.
const (
	fallbackPatientCount     = 12
	fallbackStaffCount       = 8
	fallbackBedCount         = 20
	fallbackStationCount     = 6
	fallbackAppointmentCount = 10
	fallbackAlertCount       = 5
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))
	logger := *observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client. The dashboard keeps working without it;
	// response caching and alert streaming are simply disabled.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, continuing without response cache and event bus")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient, logger)
		defer eventBus.Close()
	}

	// Initialize repositories
	patientRepo := database.NewPatientAdapter(pgClient)
	staffRepo := database.NewStaffAdapter(pgClient)
	bedRepo := database.NewBedAdapter(pgClient)
	oxygenRepo := database.NewOxygenAdapter(pgClient)
	appointmentRepo := database.NewAppointmentAdapter(pgClient)
	alertRepo := database.NewAlertAdapter(pgClient)

	// Initialize domain services
	alertService := services.NewAlertService(alertRepo, eventBus, logger)
	patientService := services.NewPatientService(patientRepo)
	staffService := services.NewStaffService(staffRepo)
	bedService := services.NewBedService(bedRepo, patientRepo)
	oxygenService := services.NewOxygenService(oxygenRepo, alertService, logger)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo)
	summaryService := services.NewSummaryService(
		patientRepo, staffRepo, bedRepo, oxygenRepo, appointmentRepo, alertRepo,
	)

	// Initialize the resiliency layer: network monitor, result cache,
	// synthetic generator, and resilient invoker.
	prober := offline.NewHTTPProber(cfg.Offline.ProbeURL, cfg.Offline.ProbeTimeout)
	monitor := offline.NewMonitor(cfg.Offline, prober, logger)
	defer monitor.Destroy()

	resultCache := offline.NewResultCache(cfg.Offline.OfflineDataTTL)
	generator := fallback.NewGenerator(
		cfg.Offline.OfflineDataTTL,
		cfg.Offline.TelemetryRefresh,
		cfg.Offline.EnableRandomization,
	)

	breakers := resilience.NewBreakerRegistry(
		cfg.Resilience.FailureThreshold,
		cfg.Resilience.BreakerCooldown,
	)
	history := apperrors.NewHistory(cfg.Resilience.ErrorHistorySize)
	invoker := resilience.NewInvoker(breakers, history, logger)

	retryCfg := resilience.RetryConfig{
		MaxRetries:        cfg.Resilience.MaxRetries,
		BaseDelay:         cfg.Resilience.BaseDelay,
		MaxDelay:          cfg.Resilience.MaxDelay,
		BackoffMultiplier: cfg.Resilience.BackoffMultiplier,
		AttemptTimeout:    cfg.Resilience.AttemptTimeout,
	}

	dataService := services.NewDashboardDataService(monitor, resultCache, invoker, retryCfg, logger)
	registerResources(dataService, cfg, generator,
		summaryService, patientService, staffService, bedService,
		oxygenService, appointmentService, alertService,
	)

	// Evict stale cache entries whenever connectivity comes back.
	monitor.Subscribe(func(status entities.NetworkStatus) {
		if status.IsOnline {
			dataService.CleanupCache()
		}
	})

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(dataService, monitor, invoker)
	patientHandler := handlers.NewPatientHandler(patientService, dataService)
	staffHandler := handlers.NewStaffHandler(staffService, dataService)
	bedHandler := handlers.NewBedHandler(bedService, dataService)
	oxygenHandler := handlers.NewOxygenHandler(oxygenService, dataService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, dataService)
	alertHandler := handlers.NewAlertHandler(alertService, dataService)
	sseHandler := handlers.NewSSEHandler(eventBus, monitor, logger)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		dashboardHandler,
		patientHandler,
		staffHandler,
		bedHandler,
		oxygenHandler,
		appointmentHandler,
		alertHandler,
		sseHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open indefinitely
		IdleTimeout:  60 * time.Second,
	}

	// Establish initial connectivity state once the server is up.
	go func() {
		time.Sleep(time.Second)
		monitor.Start(ctx)
	}()

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

// registerResources binds each dashboard resource to its live call and
// its synthetic fallback.
func registerResources(
	data *services.DashboardDataService,
	cfg *config.Config,
	gen *fallback.Generator,
	summaryService *services.SummaryService,
	patientService *services.PatientService,
	staffService *services.StaffService,
	bedService *services.BedService,
	oxygenService *services.OxygenService,
	appointmentService *services.AppointmentService,
	alertService *services.AlertService,
) {
	ttl := cfg.Offline.CacheTimeout

	data.Register(services.Resource{
		Key: services.ResourceDashboardSummary,
		Live: func(ctx context.Context) (any, error) {
			return summaryService.Build(ctx)
		},
		Fallback: func(ctx context.Context) (any, error) {
			return gen.DashboardSummary(), nil
		},
		TTL: ttl,
	})

	data.Register(services.Resource{
		Key: services.ResourcePatients,
		Live: func(ctx context.Context) (any, error) {
			return patientService.List(ctx, entities.PatientFilter{Limit: 100})
		},
		Fallback: func(ctx context.Context) (any, error) {
			return gen.Patients(fallbackPatientCount), nil
		},
		TTL: ttl,
	})

	data.Register(services.Resource{
		Key: services.ResourceStaff,
		Live: func(ctx context.Context) (any, error) {
			return staffService.List(ctx, entities.StaffFilter{Limit: 100})
		},
		Fallback: func(ctx context.Context) (any, error) {
			return gen.Staff(fallbackStaffCount), nil
		},
		TTL: ttl,
	})

	data.Register(services.Resource{
		Key: services.ResourceBeds,
		Live: func(ctx context.Context) (any, error) {
			return bedService.List(ctx, entities.BedFilter{Limit: 200})
		},
		Fallback: func(ctx context.Context) (any, error) {
			return gen.Beds(fallbackBedCount), nil
		},
		TTL: ttl,
	})

	data.Register(services.Resource{
		Key: services.ResourceOxygenStations,
		Live: func(ctx context.Context) (any, error) {
			return oxygenService.ListStations(ctx, entities.OxygenStationFilter{})
		},
		Fallback: func(ctx context.Context) (any, error) {
			return gen.OxygenStations(services.ResourceOxygenStations, fallbackStationCount), nil
		},
		TTL: ttl,
	})

	data.Register(services.Resource{
		Key: services.ResourceAppointments,
		Live: func(ctx context.Context) (any, error) {
			return appointmentService.List(ctx, entities.AppointmentFilter{Limit: 100})
		},
		Fallback: func(ctx context.Context) (any, error) {
			return gen.Appointments(fallbackAppointmentCount), nil
		},
		TTL: ttl,
	})

	data.Register(services.Resource{
		Key: services.ResourceAlerts,
		Live: func(ctx context.Context) (any, error) {
			return alertService.List(ctx, entities.AlertFilter{Status: entities.AlertStatusActive, Limit: 50})
		},
		Fallback: func(ctx context.Context) (any, error) {
			return gen.Alerts(fallbackAlertCount), nil
		},
		TTL: ttl,
	})
}
