package store

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/state"
	"github.com/sebaxchen/lookSocial/internal/storage"
	"github.com/sebaxchen/lookSocial/internal/views"
)

type CreateTaskRequest struct {
	Title       string
	Description string
	Status      model.TaskStatus
	Priority    model.TaskPriority
	Category    string
	Assignee    string
	Assignees   []string
	DueDate     *time.Time
}

// UpdateTaskRequest is a partial update: nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	Category    *string
	Assignee    *string
	Assignees   []string
	DueDate     *time.Time
}

// TaskStore owns the canonical task collection.
type TaskStore struct {
	cell       *state.Cell[[]model.Task]
	sorted     *state.Derived[[]model.Task, []model.Task]
	partitions *state.Derived[[]model.Task, views.Partitions]
	log        *log.Logger
}

func NewTaskStore(ctx context.Context, cache KeyValue, logger *log.Logger) *TaskStore {
	logger = ensureLogger(logger)

	var tasks []model.Task
	if cache != nil {
		if err := cache.Load(ctx, storage.KeyTasks, &tasks); err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Printf("⚠️  failed to load cached tasks: %v", err)
		}
	}

	cell := state.NewCell(tasks)
	cell.Subscribe(saver[[]model.Task](cache, storage.KeyTasks, logger))

	sorted := state.Derive(cell, views.SortTasks)
	s := &TaskStore{
		cell:   cell,
		sorted: sorted,
		partitions: state.Derive(cell, func(tasks []model.Task) views.Partitions {
			return views.PartitionByStatus(views.SortTasks(tasks))
		}),
		log: logger,
	}
	return s
}

// Create appends a new task, assigning id and timestamps. Defaults:
// status not-started, priority medium.
func (s *TaskStore) Create(req CreateTaskRequest) (model.Task, error) {
	if req.Title == "" {
		return model.Task{}, ErrEmptyTitle
	}

	status := req.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	now := time.Now()
	task := model.Task{
		ID:          newID(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Category:    req.Category,
		Assignee:    req.Assignee,
		Assignees:   req.Assignees,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.cell.Update(func(tasks []model.Task) []model.Task {
		return append(append([]model.Task{}, tasks...), task)
	})
	return task, nil
}

// Update merges the provided fields into the task and refreshes
// updatedAt. Unknown ids are a silent no-op (ok=false).
func (s *TaskStore) Update(id string, req UpdateTaskRequest) (model.Task, bool, error) {
	if req.Title != nil && *req.Title == "" {
		return model.Task{}, false, ErrEmptyTitle
	}

	var updated model.Task
	found := false
	s.cell.Update(func(tasks []model.Task) []model.Task {
		next := make([]model.Task, len(tasks))
		copy(next, tasks)
		for i, t := range next {
			if t.ID != id {
				continue
			}
			if req.Title != nil {
				t.Title = *req.Title
			}
			if req.Description != nil {
				t.Description = *req.Description
			}
			if req.Status != nil {
				t.Status = *req.Status
			}
			if req.Priority != nil {
				t.Priority = *req.Priority
			}
			if req.Category != nil {
				t.Category = *req.Category
			}
			if req.Assignee != nil {
				t.Assignee = *req.Assignee
			}
			if req.Assignees != nil {
				t.Assignees = req.Assignees
			}
			if req.DueDate != nil {
				t.DueDate = req.DueDate
			}
			t.UpdatedAt = touch(t.UpdatedAt)
			next[i] = t
			updated = t
			found = true
			break
		}
		return next
	})
	return updated, found, nil
}

// UpdateStatus moves a task between status columns.
func (s *TaskStore) UpdateStatus(id string, status model.TaskStatus) (model.Task, bool) {
	task, ok, _ := s.Update(id, UpdateTaskRequest{Status: &status})
	return task, ok
}

// Delete removes the task with the given id. Deleting a missing id is a
// no-op, so calling it twice leaves the collection unchanged.
func (s *TaskStore) Delete(id string) {
	s.cell.Update(func(tasks []model.Task) []model.Task {
		next := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ID != id {
				next = append(next, t)
			}
		}
		return next
	})
}

// ClearCompleted drops every completed task.
func (s *TaskStore) ClearCompleted() int {
	removed := 0
	s.cell.Update(func(tasks []model.Task) []model.Task {
		next := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status == model.StatusCompleted {
				removed++
				continue
			}
			next = append(next, t)
		}
		return next
	})
	return removed
}

// Get does a linear scan; collections stay UI-scale small.
func (s *TaskStore) Get(id string) (model.Task, bool) {
	for _, t := range s.cell.Get() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// All returns the tasks sorted by creation time, newest first.
func (s *TaskStore) All() []model.Task {
	return s.sorted.Get()
}

// Partitions returns the status buckets of the sorted list.
func (s *TaskStore) Partitions() views.Partitions {
	return s.partitions.Get()
}

func (s *TaskStore) ByAssignee(assignee string) []model.Task {
	return s.filterSorted(func(t model.Task) bool { return t.Assignee == assignee })
}

func (s *TaskStore) ByCategory(category string) []model.Task {
	return s.filterSorted(func(t model.Task) bool { return t.Category == category })
}

func (s *TaskStore) ByPriority(priority model.TaskPriority) []model.Task {
	return s.filterSorted(func(t model.Task) bool { return t.Priority == priority })
}

func (s *TaskStore) filterSorted(keep func(model.Task) bool) []model.Task {
	var result []model.Task
	for _, t := range s.sorted.Get() {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

func (s *TaskStore) Count() int { return len(s.cell.Get()) }

// DueWithin returns unfinished tasks whose due date falls inside the
// next window. Used by the reminder scan.
func (s *TaskStore) DueWithin(window time.Duration) []model.Task {
	now := time.Now()
	cutoff := now.Add(window)
	var due []model.Task
	for _, t := range s.sorted.Get() {
		if t.Status == model.StatusCompleted || t.DueDate == nil {
			continue
		}
		if t.DueDate.After(now) && t.DueDate.Before(cutoff) {
			due = append(due, t)
		}
	}
	return due
}

// Subscribe notifies fn after every mutation of the collection.
func (s *TaskStore) Subscribe(fn func([]model.Task)) func() {
	return s.cell.Subscribe(fn)
}
