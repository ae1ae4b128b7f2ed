package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/careplannavigator/internal/adapters/database"
	"github.com/zatekoja/careplannavigator/internal/adapters/events"
	"github.com/zatekoja/careplannavigator/internal/adapters/fixtures"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/providers"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/clients/redis"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	"github.com/zatekoja/careplannavigator/pkg/config"
)

func main() {
	file := flag.String("file", "", "care plan bundle to load (YAML or JSON)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("careplan-seed", cfg.Environment)

	if *file == "" {
		log.Fatal().Msg("--file is required")
	}

	bundle, err := fixtures.LoadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to load bundle")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := pgClient.DB().ExecContext(ctx, database.Schema); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, database.ResetStatement)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	summary, err := fixtures.Seed(ctx, bundle, fixtures.Target{
		Plans:        database.NewCarePlanAdapter(pgClient),
		Steps:        database.NewCareStepAdapter(pgClient),
		Dependencies: database.NewDependencyAdapter(pgClient),
		RiskMetadata: database.NewRiskMetadataAdapter(pgClient),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	publishSeeded(ctx, cfg, bundle)

	log.Info().
		Str("file", *file).
		Int("care_plans", summary.CarePlans).
		Int("care_steps", summary.CareSteps).
		Int("dependencies", summary.Dependencies).
		Int("risk_metadata", summary.RiskMetadata).
		Msg("seeding complete")
}

// publishSeeded tells running API servers which plans changed. Without
// Redis there is no shared cache to invalidate.
func publishSeeded(ctx context.Context, cfg *config.Config, bundle *fixtures.Bundle) {
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, skipping cache invalidation events")
		return
	}
	defer redisClient.Close()

	bus := events.NewRedisEventBus(redisClient)
	defer bus.Close()

	stepsByPlan := make(map[string][]string, len(bundle.CarePlans))
	for _, s := range bundle.Steps {
		stepsByPlan[s.CarePlanID] = append(stepsByPlan[s.CarePlanID], s.ID)
	}
	for _, p := range bundle.CarePlans {
		event := entities.NewCarePlanEvent(p.ID, stepsByPlan[p.ID], entities.CarePlanEventSeeded)
		if err := bus.Publish(ctx, providers.EventChannelCarePlanUpdates, event); err != nil {
			log.Warn().Err(err).Str("care_plan_id", p.ID).Msg("failed to publish care plan event")
		}
	}
}
