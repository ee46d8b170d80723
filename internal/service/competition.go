package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dominoleague/league-service/internal/metrics"
	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/ranking"
	"github.com/dominoleague/league-service/internal/repository"
)

const (
	opFinish  = "finish"
	opResults = "results"

	defaultLookupConcurrency = 8
)

type competitionService struct {
	competitions repository.CompetitionRepository
	games        repository.GameRepository
	players      repository.PlayerRepository
	tx           repository.TxManager
	metrics      *metrics.Ranking
	lookups      int
	log          zerolog.Logger
}

// CompetitionDeps groups the collaborators of the competition service.
// Metrics may be nil; LookupConcurrency <= 0 falls back to a default.
type CompetitionDeps struct {
	Competitions      repository.CompetitionRepository
	Games             repository.GameRepository
	Players           repository.PlayerRepository
	Tx                repository.TxManager
	Metrics           *metrics.Ranking
	LookupConcurrency int
}

func NewCompetitionService(deps CompetitionDeps, logger zerolog.Logger) CompetitionService {
	l := logger.With().Str("module", "service").Str("component", "competition").Logger()
	lookups := deps.LookupConcurrency
	if lookups <= 0 {
		lookups = defaultLookupConcurrency
	}
	return &competitionService{
		competitions: deps.Competitions,
		games:        deps.Games,
		players:      deps.Players,
		tx:           deps.Tx,
		metrics:      deps.Metrics,
		lookups:      lookups,
		log:          l,
	}
}

func (s *competitionService) CreateCompetition(ctx context.Context, communityID, name, description string) (model.Competition, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	ferrs := uuidField("community_id", communityID)
	if !lengthBetween(name, 2, 100) {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 100"})
	}
	if !lengthBetween(description, 0, 500) {
		ferrs = append(ferrs, FieldError{Field: "description", Message: "length must be <= 500"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("competition validation failed")
		return model.Competition{}, err
	}

	out, err := s.competitions.Create(ctx, model.Competition{
		CommunityID: communityID,
		Name:        name,
		Description: description,
		Status:      model.CompetitionPending,
		StartDate:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("community_id", communityID).Msg("create competition failed")
		return model.Competition{}, err
	}
	s.log.Info().Str("competition_id", out.ID).Msg("competition created")
	return out, nil
}

func (s *competitionService) GetCompetition(ctx context.Context, id string) (model.Competition, error) {
	if err := validateID("id", id); err != nil {
		return model.Competition{}, err
	}
	return s.competitions.GetByID(ctx, id)
}

func (s *competitionService) ListCompetitions(ctx context.Context, communityID string, page repository.Page) (repository.PageResult[model.Competition], error) {
	if err := validateID("community_id", communityID); err != nil {
		return repository.PageResult[model.Competition]{}, err
	}
	p := page.Normalize()
	res, err := s.competitions.ListByCommunity(ctx, communityID, p)
	if err != nil {
		s.log.Error().Err(err).Str("community_id", communityID).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list competitions failed")
		return repository.PageResult[model.Competition]{}, err
	}
	return res, nil
}

// StartCompetition moves a pending competition to in_progress.
func (s *competitionService) StartCompetition(ctx context.Context, id string) (model.Competition, error) {
	if err := validateID("id", id); err != nil {
		return model.Competition{}, err
	}
	var out model.Competition
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.competitions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c.Status != model.CompetitionPending {
			return fmt.Errorf("%w: cannot start a competition that is %s", ErrInvalidState, c.Status)
		}
		if err := s.competitions.SetStatus(ctx, id, model.CompetitionInProgress); err != nil {
			return err
		}
		c.Status = model.CompetitionInProgress
		out = c
		return nil
	})
	if err != nil {
		return model.Competition{}, err
	}
	s.log.Info().Str("competition_id", id).Msg("competition started")
	return out, nil
}

func (s *competitionService) ListMembers(ctx context.Context, competitionID string) ([]model.CompetitionMember, error) {
	if err := validateID("competition_id", competitionID); err != nil {
		return nil, err
	}
	return s.competitions.ListMembers(ctx, competitionID)
}

func (s *competitionService) AddMember(ctx context.Context, competitionID, playerID string) (model.CompetitionMember, error) {
	ferrs := append(uuidField("competition_id", competitionID), uuidField("player_id", playerID)...)
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.CompetitionMember{}, err
	}

	var out model.CompetitionMember
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.competitions.GetByID(ctx, competitionID); err != nil {
			return err
		}
		player, err := s.players.GetByID(ctx, playerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewInvalidInputError([]FieldError{{Field: "player_id", Message: "player does not exist"}})
			}
			return err
		}
		m, err := s.competitions.AddMember(ctx, competitionID, playerID)
		if err != nil {
			return err
		}
		m.Player = player
		out = m
		return nil
	})
	if err != nil {
		s.log.Debug().Err(err).Str("competition_id", competitionID).Str("player_id", playerID).Msg("add member failed")
		return model.CompetitionMember{}, err
	}
	return out, nil
}

func (s *competitionService) RemoveMember(ctx context.Context, competitionID, playerID string) error {
	ferrs := append(uuidField("competition_id", competitionID), uuidField("player_id", playerID)...)
	if err := NewInvalidInputError(ferrs); err != nil {
		return err
	}
	return s.competitions.RemoveMember(ctx, competitionID, playerID)
}

func (s *competitionService) CanFinish(ctx context.Context, id string) (bool, error) {
	if err := validateID("id", id); err != nil {
		return false, err
	}
	games, err := s.games.ListByCompetition(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("competition_id", id).Msg("list games failed")
		return false, err
	}
	return ranking.CanFinish(games), nil
}

func (s *competitionService) Finish(ctx context.Context, id string) (model.CompetitionResult, error) {
	start := time.Now()
	if err := validateID("id", id); err != nil {
		return model.CompetitionResult{}, err
	}

	res, outcome, err := s.leaderboards(ctx, id)
	if err != nil {
		s.metrics.Observe(opFinish, outcome, time.Since(start))
		return model.CompetitionResult{}, err
	}

	// single write; nothing before this point has touched storage
	if err := s.competitions.SetStatus(ctx, id, model.CompetitionFinished); err != nil {
		s.metrics.Observe(opFinish, metrics.OutcomeWriteError, time.Since(start))
		s.log.Error().Err(err).Str("competition_id", id).Msg("finish: status update failed")
		return model.CompetitionResult{}, fmt.Errorf("%w: %w", ErrStatusWrite, err)
	}

	s.metrics.Observe(opFinish, metrics.OutcomeOK, time.Since(start))
	s.log.Info().
		Str("competition_id", id).
		Int("players", len(res.Players)).
		Int("pairs", len(res.Pairs)).
		Dur("took", time.Since(start)).
		Msg("competition finished")
	return res, nil
}

func (s *competitionService) Results(ctx context.Context, id string) (model.CompetitionResult, error) {
	start := time.Now()
	if err := validateID("id", id); err != nil {
		return model.CompetitionResult{}, err
	}

	c, err := s.competitions.GetByID(ctx, id)
	if err != nil {
		s.metrics.Observe(opResults, metrics.OutcomeFetchError, time.Since(start))
		return model.CompetitionResult{}, err
	}
	if c.Status != model.CompetitionFinished {
		s.metrics.Observe(opResults, metrics.OutcomeInvalidState, time.Since(start))
		return model.CompetitionResult{}, fmt.Errorf("%w: competition is %s, not finished", ErrInvalidState, c.Status)
	}

	res, outcome, err := s.leaderboards(ctx, id)
	s.metrics.Observe(opResults, outcome, time.Since(start))
	if err != nil {
		return model.CompetitionResult{}, err
	}
	return res, nil
}

// leaderboards fetches the games, folds them and resolves names. It never writes.
// The returned outcome labels the metrics of the calling operation.
func (s *competitionService) leaderboards(ctx context.Context, id string) (model.CompetitionResult, string, error) {
	games, err := s.games.ListByCompetition(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("competition_id", id).Msg("list games failed")
		return model.CompetitionResult{}, metrics.OutcomeFetchError, err
	}

	tally := ranking.Aggregate(games)
	s.metrics.Aggregated(tally.Games, tally.Ties)
	if tally.Ties > 0 {
		s.log.Warn().Str("competition_id", id).Int("tied_games", tally.Ties).Msg("finished games with equal scores credited to team 2")
	}

	names, err := s.resolveNames(ctx, tally.PlayerIDs())
	if err != nil {
		s.log.Error().Err(err).Str("competition_id", id).Msg("player lookup failed")
		return model.CompetitionResult{}, metrics.OutcomeLookupError, err
	}
	return tally.Standings(names), metrics.OutcomeOK, nil
}

// resolveNames looks up every player concurrently; the first failure cancels the rest
// and fails the whole batch.
func (s *competitionService) resolveNames(ctx context.Context, ids []string) (map[string]string, error) {
	found := make([]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.lookups)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := s.players.GetByID(gctx, id)
			if err != nil {
				return fmt.Errorf("resolve player %s: %w", id, err)
			}
			found[i] = p.Name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(ids))
	for i, id := range ids {
		names[id] = found[i]
	}
	return names, nil
}
