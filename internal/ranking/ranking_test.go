package ranking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dominoleague/league-service/internal/model"
	"github.com/dominoleague/league-service/internal/ranking"
)

func finished(team1, team2 []string, s1, s2 int) model.Game {
	return model.Game{Team1: team1, Team2: team2, Team1Score: s1, Team2Score: s2, Status: model.GameFinished}
}

func withStatus(st model.GameStatus) model.Game {
	return model.Game{Team1: []string{"x"}, Team2: []string{"y"}, Status: st}
}

func TestCanFinish(t *testing.T) {
	cases := []struct {
		name  string
		games []model.Game
		want  bool
	}{
		{"empty", nil, false},
		{"only pending", []model.Game{withStatus(model.GamePending)}, false},
		{"only in progress", []model.Game{withStatus(model.GameInProgress), withStatus(model.GamePending)}, false},
		{"one finished", []model.Game{withStatus(model.GameFinished)}, true},
		{"finished and pending", []model.Game{withStatus(model.GameFinished), withStatus(model.GamePending)}, false},
		{"finished and in progress", []model.Game{withStatus(model.GameInProgress), withStatus(model.GameFinished)}, false},
		{"all finished", []model.Game{withStatus(model.GameFinished), withStatus(model.GameFinished)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ranking.CanFinish(tc.games))
		})
	}
}

func TestPairKey_OrderIndependent(t *testing.T) {
	team := []string{"b", "a"}
	assert.Equal(t, "a_b", ranking.PairKey(team))
	assert.Equal(t, ranking.PairKey([]string{"a", "b"}), ranking.PairKey(team))
	assert.Equal(t, []string{"b", "a"}, team, "input must not be reordered")
}

func TestWinner(t *testing.T) {
	assert.Equal(t, ranking.Team1, ranking.Winner(6, 3))
	assert.Equal(t, ranking.Team2, ranking.Winner(2, 6))
	assert.Equal(t, ranking.Team2, ranking.Winner(5, 5))
}

func TestAggregate_BuchudaScenario(t *testing.T) {
	tally := ranking.Aggregate([]model.Game{finished([]string{"P2", "P1"}, []string{"P3", "P4"}, 6, 0)})

	for _, id := range []string{"P1", "P2"} {
		p := tally.Player(id)
		require.NotNil(t, p)
		assert.Equal(t, ranking.Accumulator{Score: 6, Wins: 1, Losses: 0, Buchudas: 1, BuchudasDeRe: 0}, p.Accumulator, id)
	}
	for _, id := range []string{"P3", "P4"} {
		p := tally.Player(id)
		require.NotNil(t, p)
		assert.Equal(t, ranking.Accumulator{Losses: 1}, p.Accumulator, id)
	}

	pair := tally.Pair("P1", "P2")
	require.NotNil(t, pair)
	assert.Equal(t, "P1_P2", pair.Key)
	assert.Equal(t, []string{"P1", "P2"}, pair.Players)
	assert.Equal(t, ranking.Accumulator{Score: 6, Wins: 1, Buchudas: 1}, pair.Accumulator)
	assert.Equal(t, 1, tally.Games)
}

func TestAggregate_NoBuchudaOnSixOne(t *testing.T) {
	tally := ranking.Aggregate([]model.Game{finished([]string{"A"}, []string{"B"}, 6, 1)})
	assert.Zero(t, tally.Player("A").Buchudas)
	assert.Zero(t, tally.Pair("A").Buchudas)
	assert.Equal(t, 1, tally.Player("B").Score)
}

func TestAggregate_Team2Buchuda(t *testing.T) {
	tally := ranking.Aggregate([]model.Game{finished([]string{"A"}, []string{"B"}, 0, 6)})
	assert.Equal(t, 1, tally.Player("B").Buchudas)
	assert.Equal(t, 1, tally.Player("B").Wins)
	assert.Equal(t, 1, tally.Player("A").Losses)
}

func TestAggregate_BuchudaDeReOnlyForWinner(t *testing.T) {
	won := finished([]string{"A", "B"}, []string{"C", "D"}, 6, 5)
	won.Team1WasLosing5_0 = true
	lost := finished([]string{"A", "B"}, []string{"C", "D"}, 6, 4)
	lost.Team2WasLosing5_0 = true

	tally := ranking.Aggregate([]model.Game{won, lost})

	assert.Equal(t, 2, tally.Player("A").Wins)
	assert.Equal(t, 1, tally.Player("A").BuchudasDeRe)
	assert.Equal(t, 1, tally.Pair("B", "A").BuchudasDeRe)
	assert.Zero(t, tally.Player("C").BuchudasDeRe)
	assert.Zero(t, tally.Pair("C", "D").BuchudasDeRe)
}

func TestAggregate_IgnoresUnfinishedGames(t *testing.T) {
	base := []model.Game{
		finished([]string{"A", "B"}, []string{"C", "D"}, 6, 2),
		finished([]string{"C", "A"}, []string{"B", "D"}, 3, 6),
	}
	noisy := append([]model.Game{}, base...)
	pending := finished([]string{"A", "B"}, []string{"E", "F"}, 0, 0)
	pending.Status = model.GamePending
	live := finished([]string{"A", "B"}, []string{"C", "D"}, 6, 0)
	live.Status = model.GameInProgress
	noisy = append(noisy, pending, live)

	want := ranking.Aggregate(base).Standings(nil)
	got := ranking.Aggregate(noisy).Standings(nil)
	assert.Equal(t, want, got)
	assert.Nil(t, ranking.Aggregate(noisy).Player("E"))
}

func TestAggregate_WinsPlusLossesEqualsGamesPlayed(t *testing.T) {
	games := []model.Game{
		finished([]string{"A", "B"}, []string{"C", "D"}, 6, 2),
		finished([]string{"B", "A"}, []string{"C", "E"}, 4, 6),
		finished([]string{"A", "C"}, []string{"D", "E"}, 6, 0),
	}
	tally := ranking.Aggregate(games)

	played := map[string]int{}
	pairPlayed := map[string]int{}
	for _, g := range games {
		for _, id := range append(append([]string{}, g.Team1...), g.Team2...) {
			played[id]++
		}
		pairPlayed[ranking.PairKey(g.Team1)]++
		pairPlayed[ranking.PairKey(g.Team2)]++
	}
	for id, n := range played {
		p := tally.Player(id)
		require.NotNil(t, p, id)
		assert.Equal(t, n, p.Wins+p.Losses, id)
	}
	require.Len(t, tally.Pairs, len(pairPlayed))
	for _, p := range tally.Pairs {
		assert.Equal(t, pairPlayed[p.Key], p.Wins+p.Losses, p.Key)
	}
	// [A,B] and [B,A] merged into one accumulator
	assert.Equal(t, 2, tally.Pair("A", "B").Wins+tally.Pair("A", "B").Losses)
}

func TestAggregate_PlayerPairsExistInPairTally(t *testing.T) {
	tally := ranking.Aggregate([]model.Game{
		finished([]string{"A", "B"}, []string{"C", "D"}, 6, 2),
		finished([]string{"A", "C"}, []string{"B", "D"}, 1, 6),
	})
	assert.Len(t, tally.Player("A").Pairs, 2)
	for _, p := range tally.Players {
		for key := range p.Pairs {
			found := false
			for _, pair := range tally.Pairs {
				if pair.Key == key {
					found = true
				}
			}
			assert.True(t, found, "pair %s of %s missing", key, p.ID)
		}
	}
}

func TestAggregate_TieCountsAsTeam2Win(t *testing.T) {
	tally := ranking.Aggregate([]model.Game{finished([]string{"A"}, []string{"B"}, 5, 5)})
	assert.Equal(t, 1, tally.Ties)
	assert.Equal(t, 1, tally.Player("B").Wins)
	assert.Equal(t, 1, tally.Player("A").Losses)
	assert.Equal(t, 5, tally.Player("A").Score)
}

func TestStandings_SortOrder(t *testing.T) {
	games := []model.Game{
		finished([]string{"A"}, []string{"B"}, 6, 0),
		finished([]string{"A"}, []string{"C"}, 6, 3),
		finished([]string{"B"}, []string{"C"}, 6, 5),
		finished([]string{"D"}, []string{"C"}, 6, 2),
	}
	res := ranking.Aggregate(games).Standings(map[string]string{"A": "Ana", "B": "Bia", "C": "Caio", "D": "Duda"})

	ids := make([]string, 0, len(res.Players))
	for _, p := range res.Players {
		ids = append(ids, p.ID)
	}
	// A: 2-0; D: 1-0; B: 1-1; C: 0-3
	assert.Equal(t, []string{"A", "D", "B", "C"}, ids)
	assert.Equal(t, "Ana", res.Players[0].Name)
	assert.Equal(t, 100.0, res.Players[0].WinRate)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{res.Players[0].Position, res.Players[1].Position, res.Players[2].Position, res.Players[3].Position})
}

func TestStandings_TieBreakKeys(t *testing.T) {
	// winners share wins, losses and score; buchudas decide, then first appearance
	games := []model.Game{
		finished([]string{"A"}, []string{"X"}, 6, 1),
		finished([]string{"B"}, []string{"Y"}, 6, 0),
		finished([]string{"C"}, []string{"Z"}, 6, 4),
	}
	res := ranking.Aggregate(games).Standings(nil)
	require.GreaterOrEqual(t, len(res.Players), 3)
	assert.Equal(t, "B", res.Players[0].ID, "buchuda breaks the 6-point tie")
	assert.Equal(t, "A", res.Players[1].ID)
	assert.Equal(t, "C", res.Players[2].ID)
	assert.Equal(t, "Z", res.Players[3].ID, "loser with most points first")
}

func TestStandings_StableOnFullTie(t *testing.T) {
	games := []model.Game{
		finished([]string{"Q"}, []string{"L1"}, 6, 2),
		finished([]string{"M"}, []string{"L2"}, 6, 2),
		finished([]string{"K"}, []string{"L3"}, 6, 2),
	}
	res := ranking.Aggregate(games).Standings(nil)
	require.Len(t, res.Players, 6)
	assert.Equal(t, "Q", res.Players[0].ID)
	assert.Equal(t, "M", res.Players[1].ID)
	assert.Equal(t, "K", res.Players[2].ID)
	assert.Equal(t, "L1", res.Players[3].ID)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, res.Players[i].Position)
		assert.Equal(t, 4, res.Players[i+3].Position)
	}

	require.Len(t, res.Pairs, 6)
	assert.Equal(t, []string{"Q"}, res.Pairs[0].Players)
	assert.Equal(t, []string{"M"}, res.Pairs[1].Players)
}

func TestPositions(t *testing.T) {
	keys := []int{9, 9, 7, 5, 5, 5, 1}
	same := func(i, j int) bool { return keys[i] == keys[j] }
	want := []int{1, 1, 3, 4, 4, 4, 7}

	assert.Equal(t, want, ranking.Positions(len(keys), same))
	for i := range keys {
		assert.Equal(t, want[i], ranking.PositionAt(i, same), "index %d", i)
	}
	assert.Empty(t, ranking.Positions(0, same))
}

func TestPositions_LongTieRun(t *testing.T) {
	n := 100000
	pos := ranking.Positions(n, func(i, j int) bool { return true })
	assert.Equal(t, 1, pos[n-1])
	assert.Equal(t, 1, ranking.PositionAt(n-1, func(i, j int) bool { return true }))
}

func TestWinRate(t *testing.T) {
	assert.Zero(t, ranking.WinRate(0, 0))
	assert.InDelta(t, 66.666, ranking.WinRate(2, 1), 0.01)
}
