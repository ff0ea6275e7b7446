package handler

import (
	"errors"
	"net/http"

	"github.com/sebaxchen/lookSocial/internal/events"
	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	team      *store.TeamStore
	publisher *events.Publisher
}

func NewTeamHandler(team *store.TeamStore, publisher *events.Publisher) *TeamHandler {
	return &TeamHandler{team: team, publisher: publisher}
}

type memberRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
}

type memberUpdateRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Avatar *string `json:"avatar"`
	Color  *string `json:"color"`
}

func (h *TeamHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.team.All())
}

func (h *TeamHandler) Add(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member, err := h.team.Add(model.TeamMember{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Avatar: req.Avatar,
		Color:  req.Color,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	h.publisher.Publish(events.SubjectMemberJoined, member)
	c.JSON(http.StatusCreated, member)
}

func (h *TeamHandler) GetByID(c *gin.Context) {
	member, ok := h.team.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *TeamHandler) Update(c *gin.Context) {
	var req memberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member, ok := h.team.Update(c.Param("id"), store.UpdateMemberRequest{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Avatar: req.Avatar,
		Color:  req.Color,
	})
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *TeamHandler) Remove(c *gin.Context) {
	h.team.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}
