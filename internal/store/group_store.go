package store

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/palette"
	"github.com/sebaxchen/lookSocial/internal/state"
	"github.com/sebaxchen/lookSocial/internal/storage"
)

// UpdateGroupRequest is a partial update: nil fields are left untouched.
// Members and Tasks replace the whole list when provided.
type UpdateGroupRequest struct {
	Name    *string
	Members []model.GroupMember
	Tasks   []model.GroupTaskSummary
	Color   *string
}

// GroupStore owns the group collection, including each group's
// denormalized task-summary cache.
type GroupStore struct {
	cell   *state.Cell[[]model.Group]
	colors *palette.Palette
	log    *log.Logger
}

func NewGroupStore(ctx context.Context, cache KeyValue, colors *palette.Palette, logger *log.Logger) *GroupStore {
	logger = ensureLogger(logger)

	var groups []model.Group
	if cache != nil {
		if err := cache.Load(ctx, storage.KeyGroups, &groups); err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Printf("⚠️  failed to load cached groups: %v", err)
		}
	}

	cell := state.NewCell(groups)
	cell.Subscribe(saver[[]model.Group](cache, storage.KeyGroups, logger))

	s := &GroupStore{cell: cell, colors: colors, log: logger}
	// Re-pin colors of loaded groups so later lookups by name stay stable.
	for _, g := range groups {
		if g.Color != "" {
			colors.SetColor(g.Name, g.Color)
		}
	}
	return s
}

// Create adds a group. The color is assigned once from the palette when
// not provided and never changes afterwards.
func (s *GroupStore) Create(name string, members []model.GroupMember, color string) (model.Group, error) {
	if name == "" {
		return model.Group{}, ErrEmptyName
	}
	if color == "" {
		color = s.colors.ColorFor(name)
	} else {
		s.colors.SetColor(name, color)
	}

	group := model.Group{
		ID:        newID(),
		Name:      name,
		Members:   members,
		Tasks:     []model.GroupTaskSummary{},
		Color:     color,
		CreatedAt: time.Now(),
	}
	s.cell.Update(func(groups []model.Group) []model.Group {
		return append(append([]model.Group{}, groups...), group)
	})
	return group, nil
}

func (s *GroupStore) Update(id string, req UpdateGroupRequest) (model.Group, bool, error) {
	if req.Name != nil && *req.Name == "" {
		return model.Group{}, false, ErrEmptyName
	}

	var updated model.Group
	found := false
	s.cell.Update(func(groups []model.Group) []model.Group {
		next := make([]model.Group, len(groups))
		copy(next, groups)
		for i, g := range next {
			if g.ID != id {
				continue
			}
			if req.Name != nil {
				g.Name = *req.Name
			}
			if req.Members != nil {
				g.Members = req.Members
			}
			if req.Tasks != nil {
				g.Tasks = req.Tasks
			}
			if req.Color != nil {
				g.Color = *req.Color
			}
			next[i] = g
			updated = g
			found = true
			break
		}
		return next
	})
	return updated, found, nil
}

func (s *GroupStore) Delete(id string) {
	s.cell.Update(func(groups []model.Group) []model.Group {
		next := make([]model.Group, 0, len(groups))
		for _, g := range groups {
			if g.ID != id {
				next = append(next, g)
			}
		}
		return next
	})
}

func (s *GroupStore) Get(id string) (model.Group, bool) {
	for _, g := range s.cell.Get() {
		if g.ID == id {
			return g, true
		}
	}
	return model.Group{}, false
}

func (s *GroupStore) All() []model.Group {
	return s.cell.Get()
}

// ColorFor prefers the color stored on the group itself, falling back to
// the palette assignment for the name.
func (s *GroupStore) ColorFor(name string) string {
	for _, g := range s.cell.Get() {
		if g.Name == name && g.Color != "" {
			return g.Color
		}
	}
	return s.colors.ColorFor(name)
}

// AssignTask caches the task summary on the target group. The task is
// first removed from every group, so at most one group owns it.
func (s *GroupStore) AssignTask(groupID string, task model.Task) bool {
	found := false
	s.cell.Update(func(groups []model.Group) []model.Group {
		next := make([]model.Group, len(groups))
		copy(next, groups)
		for i, g := range next {
			next[i].Tasks = withoutTask(g.Tasks, task.ID)
		}
		for i, g := range next {
			if g.ID == groupID {
				next[i].Tasks = append(next[i].Tasks, task.Summarize())
				found = true
				break
			}
		}
		return next
	})
	return found
}

// RemoveTask drops the task summary from every group's cache. Callers
// invoke this when deleting a task so the caches cannot drift.
func (s *GroupStore) RemoveTask(taskID string) {
	s.cell.Update(func(groups []model.Group) []model.Group {
		next := make([]model.Group, len(groups))
		copy(next, groups)
		for i, g := range next {
			next[i].Tasks = withoutTask(g.Tasks, taskID)
		}
		return next
	})
}

// GroupOf finds the group currently caching the task, if any.
func (s *GroupStore) GroupOf(taskID string) (model.Group, bool) {
	for _, g := range s.cell.Get() {
		for _, t := range g.Tasks {
			if t.ID == taskID {
				return g, true
			}
		}
	}
	return model.Group{}, false
}

func withoutTask(tasks []model.GroupTaskSummary, taskID string) []model.GroupTaskSummary {
	next := make([]model.GroupTaskSummary, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != taskID {
			next = append(next, t)
		}
	}
	return next
}
