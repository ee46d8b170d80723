// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidState means the competition is not in a status that allows the operation (HTTP 409).
var ErrInvalidState = errors.New("invalid competition state")

// ErrStatusWrite wraps a failed status update after a successful aggregation.
// Finishing again is safe: finished games never change.
var ErrStatusWrite = errors.New("competition status update failed")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil if fe is empty.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// CompetitionService covers the competition lifecycle and its leaderboards.
type CompetitionService interface {
	CreateCompetition(ctx context.Context, communityID, name, description string) (model.Competition, error)
	GetCompetition(ctx context.Context, id string) (model.Competition, error)
	ListCompetitions(ctx context.Context, communityID string, page repository.Page) (repository.PageResult[model.Competition], error)
	StartCompetition(ctx context.Context, id string) (model.Competition, error)

	ListMembers(ctx context.Context, competitionID string) ([]model.CompetitionMember, error)
	AddMember(ctx context.Context, competitionID, playerID string) (model.CompetitionMember, error)
	RemoveMember(ctx context.Context, competitionID, playerID string) error

	// CanFinish reports whether every game is finished and at least one exists.
	CanFinish(ctx context.Context, id string) (bool, error)
	// Finish computes the leaderboards and marks the competition finished.
	// It does not check CanFinish; unfinished games are simply not counted.
	Finish(ctx context.Context, id string) (model.CompetitionResult, error)
	// Results recomputes the leaderboards of an already finished competition.
	Results(ctx context.Context, id string) (model.CompetitionResult, error)
}

// GameInput is a game as submitted by the scoring client.
type GameInput struct {
	Team1             []string
	Team2             []string
	Team1Score        int
	Team2Score        int
	Team1WasLosing5_0 bool
	Team2WasLosing5_0 bool
	Status            string
}

// GameService defines game-oriented use cases.
type GameService interface {
	RecordGame(ctx context.Context, competitionID string, in GameInput) (model.Game, error)
	GetGame(ctx context.Context, id string) (model.Game, error)
	ListGames(ctx context.Context, competitionID string) ([]model.Game, error)
}

// PlayerService defines player-oriented use cases.
type PlayerService interface {
	CreatePlayer(ctx context.Context, name, phone string) (model.Player, error)
	GetPlayer(ctx context.Context, id string) (model.Player, error)
}
