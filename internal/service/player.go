package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/repository"
)

type playerService struct {
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, name, phone string) (model.Player, error) {
	start := time.Now()
	rawName := name
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if !lengthBetween(name, 2, 60) {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 60"})
	}
	if phone != "" {
		if err := validate.Var(phone, "e164"); err != nil {
			ferrs = append(ferrs, FieldError{Field: "phone", Message: "must be in E.164 format, e.g. +5581999990000"})
		}
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Str("name_raw", rawName).Msg("player validation failed")
		return model.Player{}, err
	}

	out, err := s.players.Create(ctx, model.Player{Name: name, Phone: phone})
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("create player failed")
		return model.Player{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("player_id", out.ID).Msg("player created")
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	if err := validateID("id", id); err != nil {
		return model.Player{}, err
	}
	return s.players.GetByID(ctx, id)
}
