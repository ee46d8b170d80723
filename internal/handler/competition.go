package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dominoleague/league-service/internal/repository"
	"github.com/dominoleague/league-service/internal/service"
	"github.com/dominoleague/league-service/pkg/response"
)

// finishTimeout bounds the whole finalization: game fetch, name lookups and the status write.
const finishTimeout = 15 * time.Second

type CompetitionHandler struct {
	svc service.CompetitionService
}

func NewCompetitionHandler(svc service.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{svc: svc}
}

func (h *CompetitionHandler) Register(r *gin.RouterGroup) {
	communities := r.Group("/communities")
	{
		communities.POST("/:community_id/competitions", h.create)
		communities.GET("/:community_id/competitions", h.listByCommunity)
	}

	g := r.Group("/competitions")
	{
		g.GET("/:id", h.getByID)
		g.POST("/:id/start", h.start)
		g.GET("/:id/can-finish", h.canFinish)
		g.POST("/:id/finish", h.finish)
		g.GET("/:id/results", h.results)

		g.GET("/:id/members", h.listMembers)
		g.POST("/:id/members", h.addMember)
		g.DELETE("/:id/members/:player_id", h.removeMember)
	}
}

type createCompetitionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *CompetitionHandler) create(c *gin.Context) {
	var req createCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "name is required"}}))
		return
	}
	comp, err := h.svc.CreateCompetition(c.Request.Context(), c.Param("community_id"), req.Name, req.Description)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, comp)
}

func (h *CompetitionHandler) listByCommunity(c *gin.Context) {
	// Atoi errors are ignored intentionally, 0 falls back to service defaults.
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListCompetitions(c.Request.Context(), c.Param("community_id"), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *CompetitionHandler) getByID(c *gin.Context) {
	comp, err := h.svc.GetCompetition(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, comp)
}

func (h *CompetitionHandler) start(c *gin.Context) {
	comp, err := h.svc.StartCompetition(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, comp)
}

func (h *CompetitionHandler) canFinish(c *gin.Context) {
	ok, err := h.svc.CanFinish(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"can_finish": ok})
}

func (h *CompetitionHandler) finish(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), finishTimeout)
	defer cancel()
	res, err := h.svc.Finish(ctx, c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *CompetitionHandler) results(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), finishTimeout)
	defer cancel()
	res, err := h.svc.Results(ctx, c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *CompetitionHandler) listMembers(c *gin.Context) {
	members, err := h.svc.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, members)
}

type addMemberRequest struct {
	PlayerID string `json:"player_id" binding:"required,uuid"`
}

func (h *CompetitionHandler) addMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "player_id", Message: uuidParamMessage}}))
		return
	}
	m, err := h.svc.AddMember(c.Request.Context(), c.Param("id"), req.PlayerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, m)
}

func (h *CompetitionHandler) removeMember(c *gin.Context) {
	if err := h.svc.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("player_id")); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
