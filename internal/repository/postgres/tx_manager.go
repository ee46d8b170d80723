package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dominoleague/league-service/internal/repository"
)

// q is a minimal query executor implemented by both pgxpool.Pool and pgx.Tx.
type q interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// getQ returns the transaction carried by ctx, or the pool outside of WithinTx.
func getQ(ctx context.Context, pool *pgxpool.Pool) q {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok && tx != nil {
		return tx
	}
	return pool
}

type txManager struct{ pool *pgxpool.Pool }

func NewTxManager(pool *pgxpool.Pool) repository.TxManager { return &txManager{pool: pool} }

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if err := ensurePool(m.pool); err != nil {
		return err
	}
	// nested calls join the outer transaction
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return repository.MapPgError(err)
	}
	// no-op after a successful commit
	defer func() { _ = tx.Rollback(context.Background()) }()

	if err := fn(withTx(ctx, tx)); err != nil {
		return repository.MapPgError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return repository.MapPgError(err)
	}
	return nil
}

var _ repository.TxManager = (*txManager)(nil)

func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}

// notFound maps pgx.ErrNoRows to the domain error and everything else through MapPgError.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return repository.MapPgError(err)
}
