package ranking

import (
	"sort"

	"github.com/dominoleague/league-service/internal/model"
)

// Less orders records by how well they rank: more wins, fewer losses,
// more points, more buchudas, more buchudas de ré.
func Less(a, b model.Record) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.Losses != b.Losses {
		return a.Losses < b.Losses
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Buchudas != b.Buchudas {
		return a.Buchudas > b.Buchudas
	}
	return a.BuchudasDeRe > b.BuchudasDeRe
}

// Tied reports whether two records share every sort key.
func Tied(a, b model.Record) bool {
	return a.Wins == b.Wins &&
		a.Losses == b.Losses &&
		a.Score == b.Score &&
		a.Buchudas == b.Buchudas &&
		a.BuchudasDeRe == b.BuchudasDeRe
}

// PositionAt returns the displayed rank of index i in a sorted list:
// i+1, or the rank of the first entry of the tie run i belongs to.
func PositionAt(i int, same func(i, j int) bool) int {
	j := i
	for j > 0 && same(j, j-1) {
		j--
	}
	return j + 1
}

// Positions computes displayed ranks for a sorted list of n entries ("1,1,3,4").
func Positions(n int, same func(i, j int) bool) []int {
	out := make([]int, n)
	for i := range out {
		if i > 0 && same(i, i-1) {
			out[i] = out[i-1]
			continue
		}
		out[i] = i + 1
	}
	return out
}

func record(acc Accumulator) model.Record {
	return model.Record{
		Score:        acc.Score,
		Wins:         acc.Wins,
		Losses:       acc.Losses,
		Buchudas:     acc.Buchudas,
		BuchudasDeRe: acc.BuchudasDeRe,
		WinRate:      WinRate(acc.Wins, acc.Losses),
	}
}

// SortPlayers stable-sorts rows and fills in positions.
func SortPlayers(rows []model.PlayerStanding) {
	sort.SliceStable(rows, func(i, j int) bool { return Less(rows[i].Record, rows[j].Record) })
	pos := Positions(len(rows), func(i, j int) bool { return Tied(rows[i].Record, rows[j].Record) })
	for i := range rows {
		rows[i].Position = pos[i]
	}
}

// SortPairs stable-sorts rows and fills in positions.
func SortPairs(rows []model.PairStanding) {
	sort.SliceStable(rows, func(i, j int) bool { return Less(rows[i].Record, rows[j].Record) })
	pos := Positions(len(rows), func(i, j int) bool { return Tied(rows[i].Record, rows[j].Record) })
	for i := range rows {
		rows[i].Position = pos[i]
	}
}

// Standings assembles both sorted leaderboards. names maps player id to display name;
// a missing name is left empty.
func (t *Tally) Standings(names map[string]string) model.CompetitionResult {
	players := make([]model.PlayerStanding, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, model.PlayerStanding{ID: p.ID, Name: names[p.ID], Record: record(p.Accumulator)})
	}
	pairs := make([]model.PairStanding, 0, len(t.Pairs))
	for _, p := range t.Pairs {
		pairs = append(pairs, model.PairStanding{Players: append([]string(nil), p.Players...), Record: record(p.Accumulator)})
	}
	SortPlayers(players)
	SortPairs(pairs)
	return model.CompetitionResult{Players: players, Pairs: pairs}
}

// PlayerIDs lists every player seen, in first-appearance order.
func (t *Tally) PlayerIDs() []string {
	ids := make([]string, len(t.Players))
	for i, p := range t.Players {
		ids[i] = p.ID
	}
	return ids
}
