package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/dominoleague/league-service/internal/config"
)

const connectTimeout = 5 * time.Second

// DSN builds a postgres URL from config; url.URL takes care of escaping credentials.
func DSN(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}
	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// NewPool opens a traced, tuned pgx pool and verifies it with a bounded ping.
func NewPool(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	pg := cfg.Postgres

	poolConfig, err := pgxpool.ParseConfig(DSN(pg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}
	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newPgxLogger(*logger),
		LogLevel: traceLevel(logger.GetLevel()),
	}
	poolConfig.MaxConns = pg.MaxConns
	poolConfig.MinConns = pg.MinConns
	poolConfig.MaxConnLifetime = time.Duration(pg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = time.Duration(pg.MaxConnIdleTime) * time.Second
	poolConfig.HealthCheckPeriod = time.Duration(pg.HealthCheckPeriod) * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("user", pg.User).
		Str("db", pg.DBName).
		Msg("connected to postgres")
	return pool, nil
}
