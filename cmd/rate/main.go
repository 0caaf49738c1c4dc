// Command rate estimates the engine's Elo against the anchor roster and
// prints the result. With MONGO_URI configured the rating is also
// persisted.
package main

import (
	"context"

	"go.uber.org/zap"

	"drop_four/internal/adapters"
	"drop_four/internal/bootstrap"
	repo "drop_four/internal/repository"
	"drop_four/internal/usecase/arena"
	"drop_four/internal/usecase/engine"
)

func main() {
	logger := NewLogger()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		// run with defaults when no .env is around
		logger.Warnw("no configuration file, using defaults", "error", err)
		cfg = &bootstrap.Config{
			EngineName:      "AdultSmarterPlayer",
			EngineDepth:     4,
			EngineHeuristic: true,
			EngineRating:    2000,
			ArenaMatches:    10,
			ArenaParallel:   4,
			ArenaSeed:       1,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store arena.RatingStore
	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(cfg)
		if err := mongoAdapter.Init(ctx); err != nil {
			logger.Fatal("Failed to initialize MongoDB", zap.Error(err))
		}
		defer mongoAdapter.Close(ctx)
		store = repo.NewRatingRepository(logger, mongoAdapter.Database)
	}

	eng := engine.New(engine.Config{
		Name:         cfg.EngineName,
		Rating:       cfg.EngineRating,
		MaxDepth:     cfg.EngineDepth,
		UseHeuristic: cfg.EngineHeuristic,
	})

	lb := arena.NewLeaderboard(logger, arena.LeaderboardConfig{
		Matches:  cfg.ArenaMatches,
		Parallel: cfg.ArenaParallel,
		Seed:     cfg.ArenaSeed,
		Store:    store,
	})

	rating, err := lb.GetElo(ctx, eng)
	if err != nil {
		logger.Fatal("Rating run failed", zap.Error(err))
	}
	logger.Infow("rating run finished",
		"player", eng.Name(),
		"depth", cfg.EngineDepth,
		"matches_per_anchor", cfg.ArenaMatches,
		"rating", rating,
	)
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
