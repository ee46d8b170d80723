package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/repository"
)

type gameService struct {
	games        repository.GameRepository
	competitions repository.CompetitionRepository
	players      repository.PlayerRepository
	tx           repository.TxManager
	log          zerolog.Logger
}

func NewGameService(games repository.GameRepository, competitions repository.CompetitionRepository, players repository.PlayerRepository, tx repository.TxManager, logger zerolog.Logger) GameService {
	l := logger.With().Str("module", "service").Str("component", "game").Logger()
	return &gameService{games: games, competitions: competitions, players: players, tx: tx, log: l}
}

// RecordGame validates a game at the storage boundary so the aggregator never
// sees malformed rows. Games cannot be added to a finished competition.
func (s *gameService) RecordGame(ctx context.Context, competitionID string, in GameInput) (model.Game, error) {
	status := normalizeGameStatus(in.Status)

	ferrs := uuidField("competition_id", competitionID)
	ferrs = append(ferrs, validateTeams(in.Team1, in.Team2)...)
	if !isValidGameStatus(status) {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of pending|in_progress|finished"})
	} else {
		ferrs = append(ferrs, validateScores(in.Team1Score, in.Team2Score, status)...)
	}
	// early exit if basic structure is invalid, do not touch the database
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("game validation failed (structure)")
		return model.Game{}, err
	}

	var out model.Game
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.competitions.GetByID(ctx, competitionID)
		if err != nil {
			return err
		}
		if c.Status == model.CompetitionFinished {
			return fmt.Errorf("%w: competition is already finished", ErrInvalidState)
		}

		var existenceErrs []FieldError
		for _, team := range []struct {
			field string
			ids   []string
		}{{"team1", in.Team1}, {"team2", in.Team2}} {
			for _, id := range team.ids {
				if _, err := s.players.GetByID(ctx, id); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						existenceErrs = append(existenceErrs, FieldError{Field: team.field, Message: "player " + id + " does not exist"})
						continue
					}
					return err
				}
			}
		}
		if err := NewInvalidInputError(existenceErrs); err != nil {
			return err
		}

		created, err := s.games.Create(ctx, model.Game{
			CompetitionID:     competitionID,
			Team1:             in.Team1,
			Team2:             in.Team2,
			Team1Score:        in.Team1Score,
			Team2Score:        in.Team2Score,
			Team1WasLosing5_0: in.Team1WasLosing5_0,
			Team2WasLosing5_0: in.Team2WasLosing5_0,
			Status:            status,
		})
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("game validation failed (existence)")
		} else {
			s.log.Error().Err(err).Str("competition_id", competitionID).Msg("record game failed")
		}
		return model.Game{}, err
	}
	s.log.Info().Str("game_id", out.ID).Str("competition_id", competitionID).Str("status", string(out.Status)).Msg("game recorded")
	return out, nil
}

func (s *gameService) GetGame(ctx context.Context, id string) (model.Game, error) {
	if err := validateID("id", id); err != nil {
		return model.Game{}, err
	}
	return s.games.GetByID(ctx, id)
}

func (s *gameService) ListGames(ctx context.Context, competitionID string) ([]model.Game, error) {
	if err := validateID("competition_id", competitionID); err != nil {
		return nil, err
	}
	games, err := s.games.ListByCompetition(ctx, competitionID)
	if err != nil {
		s.log.Error().Err(err).Str("competition_id", competitionID).Msg("list games failed")
		return nil, err
	}
	return games, nil
}
