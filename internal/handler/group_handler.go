package handler

import (
	"errors"
	"net/http"

	"github.com/sebaxchen/lookSocial/internal/events"
	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groups    *store.GroupStore
	tasks     *store.TaskStore
	publisher *events.Publisher
}

func NewGroupHandler(groups *store.GroupStore, tasks *store.TaskStore, publisher *events.Publisher) *GroupHandler {
	return &GroupHandler{groups: groups, tasks: tasks, publisher: publisher}
}

type groupRequest struct {
	Name    string              `json:"name" binding:"required"`
	Members []model.GroupMember `json:"members"`
	Color   string              `json:"color"`
}

type groupUpdateRequest struct {
	Name    *string             `json:"name"`
	Members []model.GroupMember `json:"members"`
	Color   *string             `json:"color"`
}

type assignTaskRequest struct {
	TaskID string `json:"task_id" binding:"required"`
}

func (h *GroupHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.groups.All())
}

func (h *GroupHandler) Create(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	group, err := h.groups.Create(req.Name, req.Members, req.Color)
	if err != nil {
		if errors.Is(err, store.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	h.publisher.Publish(events.SubjectGroupCreated, group)
	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) GetByID(c *gin.Context) {
	group, ok := h.groups.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) Update(c *gin.Context) {
	var req groupUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	group, ok, err := h.groups.Update(c.Param("id"), store.UpdateGroupRequest{
		Name:    req.Name,
		Members: req.Members,
		Color:   req.Color,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.groups.Delete(id)
	h.publisher.Publish(events.SubjectGroupDeleted, gin.H{"id": id})
	c.Status(http.StatusNoContent)
}

// AssignTask moves a task's summary into this group. A task lives in at
// most one group, so any previous assignment is dropped first.
func (h *GroupHandler) AssignTask(c *gin.Context) {
	var req assignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, ok := h.tasks.Get(req.TaskID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if !h.groups.AssignTask(c.Param("id"), task) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	group, _ := h.groups.Get(c.Param("id"))
	c.JSON(http.StatusOK, group)
}

// UnassignTask removes the task's summary from whichever group holds it.
func (h *GroupHandler) UnassignTask(c *gin.Context) {
	h.groups.RemoveTask(c.Param("taskId"))
	c.Status(http.StatusNoContent)
}
