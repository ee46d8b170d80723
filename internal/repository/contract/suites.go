// Package contract holds storage-agnostic behavior suites for repository implementations.
package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/repository"
)

const missingID = "00000000-0000-0000-0000-000000000000"

type PlayerFactory func(t *testing.T) (repository.PlayerRepository, func())

type CompetitionFactory func(t *testing.T) (repo repository.CompetitionRepository, players repository.PlayerRepository, cleanup func())

type GameFactory func(t *testing.T) (repo repository.GameRepository, competitions repository.CompetitionRepository, players repository.PlayerRepository, cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, players repository.PlayerRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func mustPlayer(t *testing.T, repo repository.PlayerRepository, name string) model.Player {
	t.Helper()
	p, err := repo.Create(context.Background(), model.Player{Name: name})
	if err != nil {
		t.Fatalf("seed player %s: %v", name, err)
	}
	return p
}

func mustCompetition(t *testing.T, repo repository.CompetitionRepository, communityID, name string) model.Competition {
	t.Helper()
	c, err := repo.Create(context.Background(), model.Competition{
		CommunityID: communityID,
		Name:        name,
		Status:      model.CompetitionPending,
		StartDate:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed competition %s: %v", name, err)
	}
	return c
}

func RunPlayerRepositoryContract(t *testing.T, makeRepo PlayerFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		created := mustPlayer(t, repo, "Zé")
		got, err := repo.GetByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != created.ID || got.Name != "Zé" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if _, err := repo.GetByID(context.Background(), missingID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunCompetitionRepositoryContract(t *testing.T, makeRepo CompetitionFactory) {
	t.Helper()

	t.Run("create_get_set_status", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		c := mustCompetition(t, repo, "11111111-1111-1111-1111-111111111111", "Copa")
		if err := repo.SetStatus(ctx, c.ID, model.CompetitionFinished); err != nil {
			t.Fatalf("set status: %v", err)
		}
		got, err := repo.GetByID(ctx, c.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != model.CompetitionFinished || got.Name != "Copa" {
			t.Fatalf("unexpected competition: %+v", got)
		}
	})

	t.Run("set_status_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if err := repo.SetStatus(context.Background(), missingID, model.CompetitionFinished); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_by_community_pagination", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		community := "22222222-2222-2222-2222-222222222222"
		for i := 0; i < 5; i++ {
			mustCompetition(t, repo, community, "C-"+string(rune('A'+i)))
		}
		mustCompetition(t, repo, "33333333-3333-3333-3333-333333333333", "other")
		res, err := repo.ListByCommunity(context.Background(), community, repository.Page{Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 5 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("members", func(t *testing.T) {
		repo, players, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		c := mustCompetition(t, repo, "44444444-4444-4444-4444-444444444444", "Liga")
		p := mustPlayer(t, players, "Bia")
		if _, err := repo.AddMember(ctx, c.ID, p.ID); err != nil {
			t.Fatalf("add member: %v", err)
		}
		if _, err := repo.AddMember(ctx, c.ID, p.ID); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		members, err := repo.ListMembers(ctx, c.ID)
		if err != nil {
			t.Fatalf("list members: %v", err)
		}
		if len(members) != 1 || members[0].Player.Name != "Bia" {
			t.Fatalf("unexpected members: %+v", members)
		}
		if err := repo.RemoveMember(ctx, c.ID, p.ID); err != nil {
			t.Fatalf("remove member: %v", err)
		}
		if err := repo.RemoveMember(ctx, c.ID, p.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second remove, got %v", err)
		}
	})

	t.Run("add_member_unknown_player_conflict", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		c := mustCompetition(t, repo, "55555555-5555-5555-5555-555555555555", "Liga")
		if _, err := repo.AddMember(context.Background(), c.ID, missingID); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunGameRepositoryContract(t *testing.T, makeRepo GameFactory) {
	t.Helper()

	t.Run("create_get_list_in_order", func(t *testing.T) {
		repo, competitions, players, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		c := mustCompetition(t, competitions, "66666666-6666-6666-6666-666666666666", "Copa")
		a, b := mustPlayer(t, players, "A"), mustPlayer(t, players, "B")
		x, y := mustPlayer(t, players, "X"), mustPlayer(t, players, "Y")

		first, err := repo.Create(ctx, model.Game{
			CompetitionID: c.ID, Team1: []string{a.ID, b.ID}, Team2: []string{x.ID, y.ID},
			Team1Score: 6, Team2Score: 5, Team1WasLosing5_0: true, Status: model.GameFinished,
		})
		if err != nil {
			t.Fatalf("create game: %v", err)
		}
		if _, err := repo.Create(ctx, model.Game{
			CompetitionID: c.ID, Team1: []string{a.ID}, Team2: []string{x.ID}, Status: model.GamePending,
		}); err != nil {
			t.Fatalf("create second game: %v", err)
		}

		got, err := repo.GetByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(got.Team1) != 2 || got.Team1[0] != a.ID || !got.Team1WasLosing5_0 || got.Status != model.GameFinished {
			t.Fatalf("mismatch: %+v", got)
		}

		list, err := repo.ListByCompetition(ctx, c.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 || list[0].ID != first.ID {
			t.Fatalf("unexpected list: %+v", list)
		}
	})

	t.Run("score_out_of_range_conflict", func(t *testing.T) {
		repo, competitions, players, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		c := mustCompetition(t, competitions, "77777777-7777-7777-7777-777777777777", "Copa")
		a, b := mustPlayer(t, players, "A"), mustPlayer(t, players, "B")
		_, err := repo.Create(context.Background(), model.Game{
			CompetitionID: c.ID, Team1: []string{a.ID}, Team2: []string{b.ID}, Team1Score: 7, Status: model.GameFinished,
		})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if _, err := repo.GetByID(context.Background(), missingID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, players, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID string
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := players.Create(ctx, model.Player{Name: "TxCommit"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := players.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, players, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID string
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := players.Create(ctx, model.Player{Name: "TxRollback"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := players.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
