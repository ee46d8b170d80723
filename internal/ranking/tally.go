package ranking

import "github.com/dominoleague/league-service/internal/model"

// Accumulator is the running record of a player or a pair.
type Accumulator struct {
	Score        int
	Wins         int
	Losses       int
	Buchudas     int
	BuchudasDeRe int
}

// PlayerTally accumulates one player's games. Pairs holds every pair key the player was part of.
type PlayerTally struct {
	ID string
	Accumulator
	Pairs map[string]struct{}
}

// PairTally accumulates one team composition's games.
type PairTally struct {
	Key     string
	Players []string
	Accumulator
}

// Tally is the result of folding a competition's games.
// Players and Pairs are in order of first appearance.
type Tally struct {
	Players []*PlayerTally
	Pairs   []*PairTally
	// Games is the number of finished games folded.
	Games int
	// Ties counts finished games with equal scores, credited to team 2.
	Ties int

	playerIdx map[string]*PlayerTally
	pairIdx   map[string]*PairTally
}

func newTally() *Tally {
	return &Tally{
		playerIdx: make(map[string]*PlayerTally),
		pairIdx:   make(map[string]*PairTally),
	}
}

// Player returns the tally for id, or nil if the player never finished a game.
func (t *Tally) Player(id string) *PlayerTally { return t.playerIdx[id] }

// Pair returns the tally for a team in any order, or nil.
func (t *Tally) Pair(team ...string) *PairTally { return t.pairIdx[PairKey(team)] }

func (t *Tally) player(id string) *PlayerTally {
	if p, ok := t.playerIdx[id]; ok {
		return p
	}
	p := &PlayerTally{ID: id, Pairs: make(map[string]struct{})}
	t.playerIdx[id] = p
	t.Players = append(t.Players, p)
	return p
}

func (t *Tally) pair(team []string) *PairTally {
	key := PairKey(team)
	if p, ok := t.pairIdx[key]; ok {
		return p
	}
	p := &PairTally{Key: key, Players: sortedCopy(team)}
	t.pairIdx[key] = p
	t.Pairs = append(t.Pairs, p)
	return p
}

// teamSide is one team of a game during the fold.
type teamSide struct {
	players   []*PlayerTally
	pair      *PairTally
	score     int
	wasLosing bool
}

// Aggregate folds every finished game into player and pair accumulators.
// Games in any other status are ignored.
func Aggregate(games []model.Game) *Tally {
	t := newTally()
	for _, g := range games {
		if g.Status != model.GameFinished {
			continue
		}
		t.add(g)
	}
	return t
}

func (t *Tally) add(g model.Game) {
	t.Games++
	if g.Team1Score == g.Team2Score {
		t.Ties++
	}

	// players first, in team order, so first-appearance ordering matches the game row
	team1 := t.side(g.Team1, g.Team1Score, g.Team1WasLosing5_0)
	team2 := t.side(g.Team2, g.Team2Score, g.Team2WasLosing5_0)
	team1.pair = t.pair(g.Team1)
	team2.pair = t.pair(g.Team2)
	for _, p := range team1.players {
		p.Pairs[team1.pair.Key] = struct{}{}
	}
	for _, p := range team2.players {
		p.Pairs[team2.pair.Key] = struct{}{}
	}

	winner, loser := team1, team2
	if Winner(g.Team1Score, g.Team2Score) == Team2 {
		winner, loser = team2, team1
	}

	buchuda := winner.score == model.MaxScore && loser.score == 0
	// only the winner's comeback flag counts
	deRe := winner.wasLosing

	for _, acc := range winner.accumulators() {
		acc.Wins++
		acc.Score += winner.score
		if buchuda {
			acc.Buchudas++
		}
		if deRe {
			acc.BuchudasDeRe++
		}
	}
	for _, acc := range loser.accumulators() {
		acc.Losses++
		acc.Score += loser.score
	}
}

func (t *Tally) side(ids []string, score int, wasLosing bool) *teamSide {
	s := &teamSide{score: score, wasLosing: wasLosing}
	for _, id := range ids {
		s.players = append(s.players, t.player(id))
	}
	return s
}

// accumulators lists every record a team result is credited to: each player plus the pair.
func (s *teamSide) accumulators() []*Accumulator {
	out := make([]*Accumulator, 0, len(s.players)+1)
	for _, p := range s.players {
		out = append(out, &p.Accumulator)
	}
	return append(out, &s.pair.Accumulator)
}
