// Package ranking turns raw game results into competition leaderboards.
//
// Everything here is pure: callers fetch games, resolve player names and
// persist outcomes. The fold only looks at finished games and keeps
// accumulators in order of first appearance, which is the final tie-break.
package ranking

import (
	"sort"
	"strings"

	"github.com/dominoleague/league-service/internal/model"
)

// pairSeparator joins sorted player ids into a pair key.
const pairSeparator = "_"

// Side identifies one of the two teams of a game.
type Side int

const (
	Team1 Side = iota + 1
	Team2
)

// CanFinish reports whether a competition with the given games may move to finished:
// at least one finished game and nothing pending or in progress.
func CanFinish(games []model.Game) bool {
	finished := false
	for _, g := range games {
		switch g.Status {
		case model.GamePending, model.GameInProgress:
			return false
		case model.GameFinished:
			finished = true
		}
	}
	return finished
}

// Winner applies the strict-greater rule. Equal scores resolve to Team2;
// finished games with equal scores are rejected when recorded, so this only
// matters for rows written by other clients.
func Winner(team1Score, team2Score int) Side {
	if team1Score > team2Score {
		return Team1
	}
	return Team2
}

// PairKey is the canonical, order-independent key of a team. team is not modified.
func PairKey(team []string) string {
	ids := sortedCopy(team)
	return strings.Join(ids, pairSeparator)
}

func sortedCopy(team []string) []string {
	ids := make([]string, len(team))
	copy(ids, team)
	sort.Strings(ids)
	return ids
}

// WinRate is the percentage of games won, 0 when nothing was played.
func WinRate(wins, losses int) float64 {
	played := wins + losses
	if played == 0 {
		return 0
	}
	return float64(wins) / float64(played) * 100
}
