package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careplannavigator/internal/adapters/cache"
	"github.com/zatekoja/careplannavigator/internal/adapters/database"
	"github.com/zatekoja/careplannavigator/internal/adapters/events"
	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/api/handlers"
	"github.com/zatekoja/careplannavigator/internal/api/middleware"
	"github.com/zatekoja/careplannavigator/internal/api/routes"
	"github.com/zatekoja/careplannavigator/internal/application/services"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/providers"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/clients/openai"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/clients/redis"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	"github.com/zatekoja/careplannavigator/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	checks := map[string]handlers.HealthChecker{"database": pgClient}

	cacheProvider, redisClient := newCacheProvider(cfg)
	if redisClient != nil {
		defer redisClient.Close()
		checks["cache"] = redisClient
	}

	var textProvider providers.TextGenerationProvider
	if cfg.OpenAI.APIKey != "" {
		client, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Warn().Err(err).Msg("text generation disabled")
		} else {
			textProvider = client
			log.Info().Str("model", cfg.OpenAI.Model).Msg("text generation client initialized")
		}
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, explanations use fallback text")
	}

	weights, err := analysis.WeightsByName(cfg.Analysis.Weighting)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid analysis weighting")
	}
	scorer := analysis.NewScorer(weights)

	// Plans are immutable once seeded, so single-plan reads go through the cache
	carePlanAdapter := database.NewCachedCarePlanAdapter(database.NewCarePlanAdapter(pgClient), cacheProvider, cfg.Cache.TTLSeconds)
	careStepAdapter := database.NewCareStepAdapter(pgClient)
	dependencyAdapter := database.NewDependencyAdapter(pgClient)
	riskMetadataAdapter := database.NewRiskMetadataAdapter(pgClient)

	analysisService := services.NewCareAnalysisService(
		carePlanAdapter,
		careStepAdapter,
		dependencyAdapter,
		riskMetadataAdapter,
		scorer,
		cfg.Analysis.TimelineMaxDays,
		metrics,
	)
	graphService := services.NewDependencyGraphService(carePlanAdapter, careStepAdapter, dependencyAdapter)
	riskService := services.NewRiskService(careStepAdapter, dependencyAdapter, riskMetadataAdapter, metrics)
	summaryService := services.NewSummaryService(carePlanAdapter, careStepAdapter, dependencyAdapter, riskMetadataAdapter, scorer, metrics)
	explanationService := services.NewExplanationService(
		careStepAdapter,
		textProvider,
		cacheProvider,
		services.NewContentGuard(services.GuardConfig{}),
		cfg.Cache.LLMTTLSeconds,
		metrics,
	)

	// Reseeding a plan publishes an event; drop every cached view of it
	if redisClient != nil {
		eventBus := events.NewRedisEventBus(redisClient)
		defer eventBus.Close()

		invalidation := services.NewCacheInvalidationService(cacheProvider, eventBus, func(event *entities.CarePlanEvent) []string {
			keys := middleware.CarePlanResponseKeys(event.CarePlanID, event.StepIDs)
			return append(keys, database.CarePlanCacheKey(event.CarePlanID))
		})
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("cache invalidation disabled")
		} else {
			defer invalidation.Stop()
		}
	}

	router := routes.NewRouter(
		handlers.NewAnalysisHandler(analysisService, graphService, riskService),
		handlers.NewExplanationHandler(explanationService),
		handlers.NewSummaryHandler(summaryService),
		handlers.NewHealthHandler(checks),
		careStepAdapter,
		middleware.NewCacheMiddleware(cacheProvider, cfg.Cache.TTLSeconds, metrics),
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", serverAddr).
			Str("weighting", weights.Name).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}

// newCacheProvider picks the configured cache backend. An unreachable Redis
// degrades to the in-process cache instead of failing startup.
func newCacheProvider(cfg *config.Config) (providers.CacheProvider, *redis.Client) {
	memory := func() providers.CacheProvider {
		return cache.NewMemoryAdapter(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.LLMTTLSeconds)*time.Second)
	}

	if cfg.Cache.Backend == "memory" {
		log.Info().Int("max_entries", cfg.Cache.MaxEntries).Msg("using in-memory cache")
		return memory(), nil
	}

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
		return memory(), nil
	}

	log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
	return cache.NewRedisAdapter(redisClient), redisClient
}
