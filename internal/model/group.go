package model

import (
	"time"
)

type GroupMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GroupTaskSummary is a denormalized snapshot of a task cached on the
// group. It is not a foreign-key relation: callers keep it in sync.
type GroupTaskSummary struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Priority  TaskPriority `json:"priority"`
	Status    TaskStatus   `json:"status,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type Group struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Members   []GroupMember      `json:"members"`
	Tasks     []GroupTaskSummary `json:"tasks"`
	Color     string             `json:"color,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Summarize builds the denormalized entry cached on a group.
func (t Task) Summarize() GroupTaskSummary {
	return GroupTaskSummary{
		ID:        t.ID,
		Title:     t.Title,
		Priority:  t.Priority,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}
