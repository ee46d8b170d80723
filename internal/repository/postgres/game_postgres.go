package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/repository"
)

const gameColumns = `id::text, competition_id::text, team1::text[], team2::text[], team1_score, team2_score,
	team1_was_losing_5_0, team2_was_losing_5_0, status, created_at`

type gameRepository struct{ pool *pgxpool.Pool }

func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

func scanGame(row pgx.Row, out *model.Game) error {
	return row.Scan(&out.ID, &out.CompetitionID, &out.Team1, &out.Team2, &out.Team1Score, &out.Team2Score,
		&out.Team1WasLosing5_0, &out.Team2WasLosing5_0, &out.Status, &out.CreatedAt)
}

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO games (competition_id, team1, team2, team1_score, team2_score,
		                    team1_was_losing_5_0, team2_was_losing_5_0, status)
		 VALUES ($1, $2::text[]::uuid[], $3::text[]::uuid[], $4, $5, $6, $7, $8)
		 RETURNING `+gameColumns,
		g.CompetitionID, g.Team1, g.Team2, g.Team1Score, g.Team2Score,
		g.Team1WasLosing5_0, g.Team2WasLosing5_0, g.Status,
	)
	var out model.Game
	if err := scanGame(row, &out); err != nil {
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	var out model.Game
	if err := scanGame(row, &out); err != nil {
		return model.Game{}, notFound(err)
	}
	return out, nil
}

// ListByCompetition orders by creation so leaderboard tie-breaks are reproducible.
func (r *gameRepository) ListByCompetition(ctx context.Context, competitionID string) ([]model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+gameColumns+` FROM games WHERE competition_id = $1 ORDER BY created_at, id`, competitionID)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Game, 0)
	for rows.Next() {
		var g model.Game
		if err := scanGame(rows, &g); err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.GameRepository = (*gameRepository)(nil)
