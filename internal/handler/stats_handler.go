package handler

import (
	"net/http"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/store"
	"github.com/sebaxchen/lookSocial/internal/views"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	tasks *store.TaskStore
	team  *store.TeamStore
}

func NewStatsHandler(tasks *store.TaskStore, team *store.TeamStore) *StatsHandler {
	return &StatsHandler{tasks: tasks, team: team}
}

type summaryResponse struct {
	Total           int                        `json:"total"`
	Completed       int                        `json:"completed"`
	InProgress      int                        `json:"in_progress"`
	NotStarted      int                        `json:"not_started"`
	CompletionRate  int                        `json:"completion_rate"`
	CreatedToday    int                        `json:"created_today"`
	CreatedThisWeek int                        `json:"created_this_week"`
	ByPriority      map[model.TaskPriority]int `json:"by_priority"`
	Recent          []model.Task               `json:"recent"`
}

// Summary returns the dashboard counters in one response.
func (h *StatsHandler) Summary(c *gin.Context) {
	all := h.tasks.All()
	parts := h.tasks.Partitions()
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	recent := all
	if len(recent) > 5 {
		recent = recent[:5]
	}

	c.JSON(http.StatusOK, summaryResponse{
		Total:           len(all),
		Completed:       len(parts.Completed),
		InProgress:      len(parts.InProgress),
		NotStarted:      len(parts.NotStarted),
		CompletionRate:  views.CompletionRate(len(parts.Completed), len(all)),
		CreatedToday:    views.CountCreatedSince(all, midnight),
		CreatedThisWeek: views.CountCreatedSince(all, weekAgo),
		ByPriority:      views.PriorityDistribution(all),
		Recent:          recent,
	})
}

// Productivity returns per-member completion stats, best first.
func (h *StatsHandler) Productivity(c *gin.Context) {
	c.JSON(http.StatusOK, views.TeamProductivity(h.team.All(), h.tasks.All()))
}
