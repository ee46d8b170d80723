package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dominoleague/league-service/internal/model"
)

var validate = validator.New()

// uuidField returns a FieldError unless id is a canonical UUID.
func uuidField(field, id string) []FieldError {
	if strings.TrimSpace(id) == "" {
		return []FieldError{{Field: field, Message: "must not be empty"}}
	}
	if err := validate.Var(id, "uuid"); err != nil {
		return []FieldError{{Field: field, Message: "must be a valid uuid"}}
	}
	return nil
}

func validateID(field, id string) error {
	return NewInvalidInputError(uuidField(field, id))
}

func normalizeGameStatus(status string) model.GameStatus {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return model.GamePending
	}
	return model.GameStatus(s)
}

func isValidGameStatus(status model.GameStatus) bool {
	switch status {
	case model.GamePending, model.GameInProgress, model.GameFinished:
		return true
	default:
		return false
	}
}

func lengthBetween(s string, min, max int) bool {
	n := len([]rune(s))
	return n >= min && n <= max
}

// validateTeams checks team shape: 1 or 2 players each, equal sizes, valid ids,
// nobody listed twice across both teams.
func validateTeams(team1, team2 []string) []FieldError {
	var ferrs []FieldError
	for _, t := range []struct {
		field string
		ids   []string
	}{{"team1", team1}, {"team2", team2}} {
		if len(t.ids) < 1 || len(t.ids) > 2 {
			ferrs = append(ferrs, FieldError{Field: t.field, Message: "must have 1 or 2 players"})
			continue
		}
		for _, id := range t.ids {
			if fe := uuidField(t.field, id); fe != nil {
				ferrs = append(ferrs, fe...)
				break
			}
		}
	}
	if len(ferrs) > 0 {
		return ferrs
	}
	if len(team1) != len(team2) {
		ferrs = append(ferrs, FieldError{Field: "teams", Message: "teams must have the same size"})
	}
	seen := make(map[string]struct{}, len(team1)+len(team2))
	for _, id := range append(append([]string{}, team1...), team2...) {
		if _, dup := seen[id]; dup {
			ferrs = append(ferrs, FieldError{Field: "teams", Message: "player " + id + " listed more than once"})
			continue
		}
		seen[id] = struct{}{}
	}
	return ferrs
}

func validateScores(s1, s2 int, status model.GameStatus) []FieldError {
	var ferrs []FieldError
	if s1 < 0 || s1 > model.MaxScore {
		ferrs = append(ferrs, FieldError{Field: "team1_score", Message: "must be between 0 and 6"})
	}
	if s2 < 0 || s2 > model.MaxScore {
		ferrs = append(ferrs, FieldError{Field: "team2_score", Message: "must be between 0 and 6"})
	}
	if status == model.GameFinished && s1 == s2 {
		ferrs = append(ferrs, FieldError{Field: "scores", Message: "a finished game must have a winner"})
	}
	return ferrs
}
