package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// Migrate applies pending goose migrations from dir over a database/sql view of the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir string, logger *zerolog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up %s: %w", dir, err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	logger.Info().Str("dir", dir).Int64("version", version).Msg("migrations applied")
	return nil
}
