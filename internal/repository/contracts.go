package repository

import (
	"context"

	"github.com/dominoleague/league-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// CompetitionRepository declares persistence operations for competitions and their members.
// SetStatus is the only write the ranking flow performs; it guarantees no compare-and-set.
type CompetitionRepository interface {
	Create(ctx context.Context, c model.Competition) (model.Competition, error)
	GetByID(ctx context.Context, id string) (model.Competition, error)
	ListByCommunity(ctx context.Context, communityID string, p Page) (PageResult[model.Competition], error)
	SetStatus(ctx context.Context, id string, status model.CompetitionStatus) error

	ListMembers(ctx context.Context, competitionID string) ([]model.CompetitionMember, error)
	AddMember(ctx context.Context, competitionID, playerID string) (model.CompetitionMember, error)
	RemoveMember(ctx context.Context, competitionID, playerID string) error
}

// GameRepository declares persistence operations for games.
type GameRepository interface {
	Create(ctx context.Context, g model.Game) (model.Game, error)
	GetByID(ctx context.Context, id string) (model.Game, error)
	// ListByCompetition returns every game of a competition regardless of status,
	// in creation order. The order is stable across calls.
	ListByCompetition(ctx context.Context, competitionID string) ([]model.Game, error)
}

// PlayerRepository declares persistence operations for players.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	// GetByID fails with ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (model.Player, error)
}
