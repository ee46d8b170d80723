package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dominoleague/league-service/internal/service"
	"github.com/dominoleague/league-service/pkg/response"
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
	}
}

type createPlayerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *PlayerHandler) create(c *gin.Context) {
	var req createPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput) // parsing details stay internal
		return
	}
	player, err := h.svc.CreatePlayer(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, player)
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	player, err := h.svc.GetPlayer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}
