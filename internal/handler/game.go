package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dominoleague/league-service/internal/service"
	"github.com/dominoleague/league-service/pkg/response"
)

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler { return &GameHandler{svc: svc} }

func (h *GameHandler) Register(r *gin.RouterGroup) {
	// Nested under competitions: /api/v1/competitions/:id/games
	comp := r.Group("/competitions")
	{
		comp.POST("/:id/games", h.record)
		comp.GET("/:id/games", h.listByCompetition)
	}
	r.Group("/games").GET("/:id", h.getByID)
}

type recordGameRequest struct {
	Team1             []string `json:"team1" binding:"required"`
	Team2             []string `json:"team2" binding:"required"`
	Team1Score        int      `json:"team1_score"`
	Team2Score        int      `json:"team2_score"`
	Team1WasLosing5_0 bool     `json:"team1_was_losing_5_0"`
	Team2WasLosing5_0 bool     `json:"team2_was_losing_5_0"`
	Status            string   `json:"status"`
}

func (h *GameHandler) record(c *gin.Context) {
	var req recordGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "team1 and team2 are required"}}))
		return
	}
	game, err := h.svc.RecordGame(c.Request.Context(), c.Param("id"), service.GameInput{
		Team1:             req.Team1,
		Team2:             req.Team2,
		Team1Score:        req.Team1Score,
		Team2Score:        req.Team2Score,
		Team1WasLosing5_0: req.Team1WasLosing5_0,
		Team2WasLosing5_0: req.Team2WasLosing5_0,
		Status:            req.Status,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, game)
}

func (h *GameHandler) listByCompetition(c *gin.Context) {
	games, err := h.svc.ListGames(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, games)
}

func (h *GameHandler) getByID(c *gin.Context) {
	game, err := h.svc.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}
