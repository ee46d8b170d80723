package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/repository"
)

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO players (name, phone) VALUES ($1, NULLIF($2, ''))
		 RETURNING id::text, name, COALESCE(phone, ''), created_at`,
		p.Name, p.Phone,
	)
	var out model.Player
	if err := row.Scan(&out.ID, &out.Name, &out.Phone, &out.CreatedAt); err != nil {
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id string) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT id::text, name, COALESCE(phone, ''), created_at FROM players WHERE id = $1`, id)
	var out model.Player
	if err := row.Scan(&out.ID, &out.Name, &out.Phone, &out.CreatedAt); err != nil {
		return model.Player{}, notFound(err)
	}
	return out, nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
