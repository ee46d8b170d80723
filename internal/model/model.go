// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// CompetitionStatus is the lifecycle state of a competition: pending → in_progress → finished.
type CompetitionStatus string

const (
	CompetitionPending    CompetitionStatus = "pending"
	CompetitionInProgress CompetitionStatus = "in_progress"
	CompetitionFinished   CompetitionStatus = "finished"
)

// GameStatus is the lifecycle state of a single game.
type GameStatus string

const (
	GamePending    GameStatus = "pending"
	GameInProgress GameStatus = "in_progress"
	GameFinished   GameStatus = "finished"
)

// MaxScore is the score that ends a game.
const MaxScore = 6

// Competition groups games played by members of a community.
type Competition struct {
	ID          string            `json:"id"`
	CommunityID string            `json:"community_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      CompetitionStatus `json:"status"`
	StartDate   time.Time         `json:"start_date"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Player is a community member able to take part in games.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CompetitionMember links a player to a competition.
type CompetitionMember struct {
	ID            string `json:"id"`
	CompetitionID string `json:"competition_id"`
	PlayerID      string `json:"player_id"`
	Player        Player `json:"player"`
}

// Game is one match between two teams of one or two players.
// The WasLosing5_0 flags are recorded by the scoring client when a team
// trailed 0–5 at some point; they cannot be derived from the final score.
type Game struct {
	ID                string     `json:"id"`
	CompetitionID     string     `json:"competition_id"`
	Team1             []string   `json:"team1"`
	Team2             []string   `json:"team2"`
	Team1Score        int        `json:"team1_score"`
	Team2Score        int        `json:"team2_score"`
	Team1WasLosing5_0 bool       `json:"team1_was_losing_5_0"`
	Team2WasLosing5_0 bool       `json:"team2_was_losing_5_0"`
	Status            GameStatus `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Record is the shared tally reported for both players and pairs.
type Record struct {
	Score        int     `json:"score"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Buchudas     int     `json:"buchudas"`
	BuchudasDeRe int     `json:"buchudas_de_re"`
	WinRate      float64 `json:"win_rate"`
	Position     int     `json:"position"`
}

// PlayerStanding is one row of the player leaderboard.
type PlayerStanding struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Record
}

// PairStanding is one row of the pair leaderboard.
type PairStanding struct {
	Players []string `json:"players"`
	Record
}

// CompetitionResult holds both leaderboards, already sorted.
// This model is read-only and never persisted.
type CompetitionResult struct {
	Players []PlayerStanding `json:"players"`
	Pairs   []PairStanding   `json:"pairs"`
}
