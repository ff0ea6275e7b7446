package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sebaxchen/lookSocial/internal/events"
	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks     *store.TaskStore
	groups    *store.GroupStore
	publisher *events.Publisher
}

func NewTaskHandler(tasks *store.TaskStore, groups *store.GroupStore, publisher *events.Publisher) *TaskHandler {
	return &TaskHandler{tasks: tasks, groups: groups, publisher: publisher}
}

type taskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	Assignee    string     `json:"assignee"`
	Assignees   []string   `json:"assignees"`
	DueDate     *time.Time `json:"due_date"`
}

type taskUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Category    *string    `json:"category"`
	Assignee    *string    `json:"assignee"`
	Assignees   []string   `json:"assignees"`
	DueDate     *time.Time `json:"due_date"`
}

type taskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List returns tasks newest first, optionally filtered by assignee,
// category or priority.
func (h *TaskHandler) List(c *gin.Context) {
	if assignee := c.Query("assignee"); assignee != "" {
		c.JSON(http.StatusOK, h.tasks.ByAssignee(assignee))
		return
	}
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, h.tasks.ByCategory(category))
		return
	}
	if priority := c.Query("priority"); priority != "" {
		p := model.TaskPriority(priority)
		if !model.ValidTaskPriority(p) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		c.JSON(http.StatusOK, h.tasks.ByPriority(p))
		return
	}
	c.JSON(http.StatusOK, h.tasks.All())
}

// Board returns tasks grouped by status, each bucket newest first.
func (h *TaskHandler) Board(c *gin.Context) {
	c.JSON(http.StatusOK, h.tasks.Partitions())
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := model.TaskStatus(req.Status)
	if req.Status != "" && !model.ValidTaskStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	priority := model.TaskPriority(req.Priority)
	if req.Priority != "" && !model.ValidTaskPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	task, err := h.tasks.Create(store.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Category:    req.Category,
		Assignee:    req.Assignee,
		Assignees:   req.Assignees,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	h.publisher.Publish(events.SubjectTaskCreated, task)
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	task, ok := h.tasks.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	upd := store.UpdateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Assignee:    req.Assignee,
		Assignees:   req.Assignees,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		if !model.ValidTaskStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		upd.Status = &status
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		if !model.ValidTaskPriority(priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		upd.Priority = &priority
	}

	task, ok, err := h.tasks.Update(c.Param("id"), upd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	h.syncGroupSummary(task)
	h.publisher.Publish(events.SubjectTaskUpdated, task)
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := model.TaskStatus(req.Status)
	if !model.ValidTaskStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	task, ok := h.tasks.UpdateStatus(c.Param("id"), status)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	h.syncGroupSummary(task)
	h.publisher.Publish(events.SubjectTaskUpdated, task)
	c.JSON(http.StatusOK, task)
}

// Delete removes the task and drops its summary from whichever group
// held it.
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.tasks.Delete(id)
	h.groups.RemoveTask(id)
	h.publisher.Publish(events.SubjectTaskDeleted, gin.H{"id": id})
	c.Status(http.StatusNoContent)
}

// ClearCompleted removes every completed task and their group summaries.
func (h *TaskHandler) ClearCompleted(c *gin.Context) {
	completed := h.tasks.Partitions().Completed
	removed := h.tasks.ClearCompleted()
	for _, t := range completed {
		h.groups.RemoveTask(t.ID)
		h.publisher.Publish(events.SubjectTaskDeleted, gin.H{"id": t.ID})
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// syncGroupSummary refreshes the denormalized summary a group keeps for
// this task, if any group holds it.
func (h *TaskHandler) syncGroupSummary(task model.Task) {
	if group, ok := h.groups.GroupOf(task.ID); ok {
		h.groups.AssignTask(group.ID, task)
	}
}
