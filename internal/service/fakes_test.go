package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/repository"
)

// uid builds deterministic, valid UUIDs so validation passes in tests.
func uid(n int) string { return fmt.Sprintf("00000000-0000-4000-8000-%012d", n) }

type fakeCompetitionRepo struct {
	mu           sync.Mutex
	items        map[string]model.Competition
	members      map[string][]model.CompetitionMember
	setStatusErr error
	statusWrites []model.CompetitionStatus
	nextID       int
}

func newFakeCompetitionRepo(cs ...model.Competition) *fakeCompetitionRepo {
	f := &fakeCompetitionRepo{items: map[string]model.Competition{}, members: map[string][]model.CompetitionMember{}, nextID: 900}
	for _, c := range cs {
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeCompetitionRepo) Create(_ context.Context, c model.Competition) (model.Competition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = uid(f.nextID)
	c.CreatedAt = time.Now()
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCompetitionRepo) GetByID(_ context.Context, id string) (model.Competition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return model.Competition{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompetitionRepo) ListByCommunity(_ context.Context, communityID string, _ repository.Page) (repository.PageResult[model.Competition], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res repository.PageResult[model.Competition]
	for _, c := range f.items {
		if c.CommunityID == communityID {
			res.Items = append(res.Items, c)
		}
	}
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakeCompetitionRepo) SetStatus(_ context.Context, id string, status model.CompetitionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	c, ok := f.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Status = status
	f.items[id] = c
	f.statusWrites = append(f.statusWrites, status)
	return nil
}

func (f *fakeCompetitionRepo) ListMembers(_ context.Context, competitionID string) ([]model.CompetitionMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.members[competitionID], nil
}

func (f *fakeCompetitionRepo) AddMember(_ context.Context, competitionID, playerID string) (model.CompetitionMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[competitionID] {
		if m.PlayerID == playerID {
			return model.CompetitionMember{}, repository.ErrAlreadyExists
		}
	}
	m := model.CompetitionMember{ID: uid(len(f.members[competitionID]) + 500), CompetitionID: competitionID, PlayerID: playerID}
	f.members[competitionID] = append(f.members[competitionID], m)
	return m, nil
}

func (f *fakeCompetitionRepo) RemoveMember(_ context.Context, competitionID, playerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.members[competitionID]
	for i, m := range list {
		if m.PlayerID == playerID {
			f.members[competitionID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.CompetitionRepository = (*fakeCompetitionRepo)(nil)

type fakeGameRepo struct {
	mu        sync.Mutex
	byComp    map[string][]model.Game
	listErr   error
	listCalls int
	nextID    int
}

func newFakeGameRepo() *fakeGameRepo { return &fakeGameRepo{byComp: map[string][]model.Game{}, nextID: 700} }

func (f *fakeGameRepo) Create(_ context.Context, g model.Game) (model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	g.ID = uid(f.nextID)
	f.byComp[g.CompetitionID] = append(f.byComp[g.CompetitionID], g)
	return g, nil
}

func (f *fakeGameRepo) GetByID(_ context.Context, id string) (model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, games := range f.byComp {
		for _, g := range games {
			if g.ID == id {
				return g, nil
			}
		}
	}
	return model.Game{}, repository.ErrNotFound
}

func (f *fakeGameRepo) ListByCompetition(_ context.Context, competitionID string) ([]model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Game(nil), f.byComp[competitionID]...), nil
}

var _ repository.GameRepository = (*fakeGameRepo)(nil)

type fakePlayerRepo struct {
	mu      sync.Mutex
	players map[string]model.Player
	failOn  map[string]error
	lookups int
}

func newFakePlayerRepo(names map[string]string) *fakePlayerRepo {
	f := &fakePlayerRepo{players: map[string]model.Player{}, failOn: map[string]error{}}
	for id, name := range names {
		f.players[id] = model.Player{ID: id, Name: name}
	}
	return f
}

func (f *fakePlayerRepo) Create(_ context.Context, p model.Player) (model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uid(len(f.players) + 100)
	f.players[p.ID] = p
	return p, nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id string) (model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if err, ok := f.failOn[id]; ok {
		return model.Player{}, err
	}
	p, ok := f.players[id]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

var _ repository.PlayerRepository = (*fakePlayerRepo)(nil)

type fakeTx struct{}

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }

var _ repository.TxManager = (*fakeTx)(nil)
