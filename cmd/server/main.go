package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dominoleague/league-service/internal/config"
	"github.com/dominoleague/league-service/internal/handler"
	"github.com/dominoleague/league-service/internal/logger"
	"github.com/dominoleague/league-service/internal/metrics"
	"github.com/dominoleague/league-service/internal/repository"
	"github.com/dominoleague/league-service/internal/repository/postgres"
	"github.com/dominoleague/league-service/internal/service"
)

func main() {
	configPath := flag.String("config", envOr("APP_CONFIG", "config.yaml"), "path to config file")
	migrate := flag.Bool("migrate", false, "apply goose migrations before serving")
	migrationsDir := flag.String("migrations", "migrations/goose_sql", "goose migrations directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	if *migrate {
		if err := repository.Migrate(ctx, pool, *migrationsDir, &appLogger); err != nil {
			appLogger.Fatal().Err(err).Msg("migrations failed")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	competitions := postgres.NewCompetitionRepository(pool)
	games := postgres.NewGameRepository(pool)
	players := postgres.NewPlayerRepository(pool)
	tx := postgres.NewTxManager(pool)

	svcs := handler.Services{
		Competitions: service.NewCompetitionService(service.CompetitionDeps{
			Competitions:      competitions,
			Games:             games,
			Players:           players,
			Tx:                tx,
			Metrics:           metrics.NewRanking(reg),
			LookupConcurrency: cfg.Ranking.NameLookupConcurrency,
		}, appLogger),
		Games:   service.NewGameService(games, competitions, players, tx, appLogger),
		Players: service.NewPlayerService(players, appLogger),
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(appLogger))
	handler.Register(r, postgres.NewPinger(pool), svcs, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("env", cfg.App.Env).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
