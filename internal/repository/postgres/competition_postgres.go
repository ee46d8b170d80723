package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/repository"
)

const competitionColumns = `id::text, community_id::text, name, description, status, start_date, created_at`

type competitionRepository struct{ pool *pgxpool.Pool }

func NewCompetitionRepository(pool *pgxpool.Pool) repository.CompetitionRepository {
	return &competitionRepository{pool: pool}
}

func scanCompetition(row pgx.Row, out *model.Competition) error {
	return row.Scan(&out.ID, &out.CommunityID, &out.Name, &out.Description, &out.Status, &out.StartDate, &out.CreatedAt)
}

func (r *competitionRepository) Create(ctx context.Context, c model.Competition) (model.Competition, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Competition{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO competitions (community_id, name, description, status, start_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+competitionColumns,
		c.CommunityID, c.Name, c.Description, c.Status, c.StartDate,
	)
	var out model.Competition
	if err := scanCompetition(row, &out); err != nil {
		return model.Competition{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *competitionRepository) GetByID(ctx context.Context, id string) (model.Competition, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Competition{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+competitionColumns+` FROM competitions WHERE id = $1`, id)
	var out model.Competition
	if err := scanCompetition(row, &out); err != nil {
		return model.Competition{}, notFound(err)
	}
	return out, nil
}

func (r *competitionRepository) ListByCommunity(ctx context.Context, communityID string, p repository.Page) (repository.PageResult[model.Competition], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Competition]{}, err
	}
	p = p.Normalize()
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+competitionColumns+`, COUNT(*) OVER() AS total
		 FROM competitions WHERE community_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		communityID, p.Limit, p.Offset,
	)
	if err != nil {
		return repository.PageResult[model.Competition]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Competition]{Items: make([]model.Competition, 0, p.Limit)}
	for rows.Next() {
		var it model.Competition
		if err := rows.Scan(&it.ID, &it.CommunityID, &it.Name, &it.Description, &it.Status, &it.StartDate, &it.CreatedAt, &res.Total); err != nil {
			return repository.PageResult[model.Competition]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Competition]{}, repository.MapPgError(err)
	}
	return res, nil
}

// SetStatus overwrites the status unconditionally. Callers that need
// compare-and-set semantics must check the current status themselves.
func (r *competitionRepository) SetStatus(ctx context.Context, id string, status model.CompetitionStatus) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `UPDATE competitions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListMembers returns members joined with their player rows; members whose
// player no longer exists are skipped.
func (r *competitionRepository) ListMembers(ctx context.Context, competitionID string) ([]model.CompetitionMember, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT m.id::text, m.competition_id::text, p.id::text, p.name, COALESCE(p.phone, ''), p.created_at
		 FROM competition_members m
		 INNER JOIN players p ON p.id = m.player_id
		 WHERE m.competition_id = $1
		 ORDER BY p.name, p.id`, competitionID)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.CompetitionMember, 0)
	for rows.Next() {
		var m model.CompetitionMember
		if err := rows.Scan(&m.ID, &m.CompetitionID, &m.Player.ID, &m.Player.Name, &m.Player.Phone, &m.Player.CreatedAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		m.PlayerID = m.Player.ID
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *competitionRepository) AddMember(ctx context.Context, competitionID, playerID string) (model.CompetitionMember, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.CompetitionMember{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO competition_members (competition_id, player_id)
		 VALUES ($1, $2)
		 RETURNING id::text, competition_id::text, player_id::text`,
		competitionID, playerID,
	)
	var m model.CompetitionMember
	if err := row.Scan(&m.ID, &m.CompetitionID, &m.PlayerID); err != nil {
		return model.CompetitionMember{}, repository.MapPgError(err)
	}
	return m, nil
}

func (r *competitionRepository) RemoveMember(ctx context.Context, competitionID, playerID string) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx,
		`DELETE FROM competition_members WHERE competition_id = $1 AND player_id = $2`,
		competitionID, playerID)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CompetitionRepository = (*competitionRepository)(nil)
