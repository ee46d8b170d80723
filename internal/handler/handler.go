package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dominoleague/league-service/internal/service"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Competitions service.CompetitionService
	Games        service.GameService
	Players      service.PlayerService
}

// Register mounts all public routes on the given engine.
// metrics may be nil when the process runs without a Prometheus registry.
func Register(r *gin.Engine, repo Pinger, svcs Services, metrics http.Handler) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewCompetitionHandler(svcs.Competitions).Register(api)
		NewGameHandler(svcs.Games).Register(api)
		NewPlayerHandler(svcs.Players).Register(api)
	}
}
