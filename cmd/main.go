package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"drop_four/internal/adapters"
	"drop_four/internal/bootstrap"
	gameDelivery "drop_four/internal/delivery/game"
	ownMiddleware "drop_four/internal/middleware"
	"drop_four/internal/usecase/engine"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, *cfg)
	// the run context is already cancelled during shutdown, so the
	// adapters get their own closing deadline
	defer closeDatabaseAdapters(databaseAdapters, logger)

	eng := engine.New(engine.Config{
		Name:         cfg.EngineName,
		Rating:       cfg.EngineRating,
		MaxDepth:     cfg.EngineDepth,
		UseHeuristic: cfg.EngineHeuristic,
	})

	r := chi.NewRouter()
	gameHandler := gameDelivery.NewGameHandler(*cfg, logger, databaseAdapters.mongoAdapter, databaseAdapters.redisAdapter, eng)
	router(r, gameHandler, cfg.IsLocalCors)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", zap.Error(err))
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func router(r *chi.Mux, game *gameDelivery.GameHandler, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	r.Post("/api/game/new", game.HandleNewGame)
	r.Post("/api/game/move", game.HandleMove)
	r.Get("/api/game/state", game.HandleGameState)
	r.Get("/api/game/ws", game.HandleGameSocket)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(&cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(&cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize Redis", zap.Error(err))
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func closeDatabaseAdapters(a *dataBaseAdapters, log *zap.SugaredLogger) {
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.mongoAdapter.Close(closeCtx); err != nil {
		log.Error("Failed to close MongoDB", zap.Error(err))
	}
	if err := a.redisAdapter.Close(closeCtx); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
	time.Sleep(1 * time.Second) // let connections close
}
