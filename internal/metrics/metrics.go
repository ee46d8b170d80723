// Package metrics exposes Prometheus collectors for competition finalization.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for finalization attempts.
const (
	OutcomeOK           = "ok"
	OutcomeFetchError   = "fetch_error"
	OutcomeLookupError  = "lookup_error"
	OutcomeWriteError   = "write_error"
	OutcomeInvalidState = "invalid_state"
)

// Ranking records how leaderboards are computed. A nil *Ranking is a valid no-op.
type Ranking struct {
	finishes  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	games     prometheus.Counter
	tiedGames prometheus.Counter
}

// NewRanking registers collectors on reg. Use a dedicated registry per process
// (or per test) so repeated construction never collides.
func NewRanking(reg prometheus.Registerer) *Ranking {
	f := promauto.With(reg)
	return &Ranking{
		finishes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "competition_leaderboard_runs_total",
				Help: "Leaderboard computations by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "competition_leaderboard_duration_seconds",
				Help:    "Time spent fetching, aggregating and resolving a leaderboard.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		games: f.NewCounter(prometheus.CounterOpts{
			Name: "competition_games_aggregated_total",
			Help: "Finished games folded into leaderboards.",
		}),
		tiedGames: f.NewCounter(prometheus.CounterOpts{
			Name: "competition_tied_games_total",
			Help: "Finished games with equal scores, credited to team 2.",
		}),
	}
}

// Observe records one computation.
func (r *Ranking) Observe(operation, outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.finishes.WithLabelValues(operation, outcome).Inc()
	r.duration.WithLabelValues(operation).Observe(took.Seconds())
}

// Aggregated records the size of one fold.
func (r *Ranking) Aggregated(games, ties int) {
	if r == nil {
		return
	}
	r.games.Add(float64(games))
	r.tiedGames.Add(float64(ties))
}
