package store_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/storage"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is an in-memory stand-in for the sqlite cache.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	saves   int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Save(_ context.Context, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.saves++
	return nil
}

func (c *memCache) Load(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return storage.ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func newTaskStore(t *testing.T) (*store.TaskStore, *memCache) {
	t.Helper()
	cache := newMemCache()
	return store.NewTaskStore(context.Background(), cache, nil), cache
}

func TestTaskStore_CreateDefaults(t *testing.T) {
	// Arrange
	s, _ := newTaskStore(t)

	// Act
	task, err := s.Create(store.CreateTaskRequest{Title: "write report"})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, model.StatusNotStarted, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestTaskStore_CreateEmptyTitle(t *testing.T) {
	s, _ := newTaskStore(t)

	_, err := s.Create(store.CreateTaskRequest{})

	assert.ErrorIs(t, err, store.ErrEmptyTitle)
	assert.Equal(t, 0, s.Count())
}

func TestTaskStore_AllNewestFirst(t *testing.T) {
	// Arrange
	s, _ := newTaskStore(t)
	first, _ := s.Create(store.CreateTaskRequest{Title: "first"})
	second, _ := s.Create(store.CreateTaskRequest{Title: "second"})

	// Act
	all := s.All()

	// Assert
	require.Len(t, all, 2)
	// Equal timestamps keep insertion order, later timestamps go first.
	if second.CreatedAt.After(first.CreatedAt) {
		assert.Equal(t, "second", all[0].Title)
	} else {
		assert.Equal(t, "first", all[0].Title)
	}
}

func TestTaskStore_UpdatePartial(t *testing.T) {
	// Arrange
	s, _ := newTaskStore(t)
	task, _ := s.Create(store.CreateTaskRequest{
		Title:       "draft",
		Description: "keep me",
	})

	// Act
	title := "final"
	updated, ok, err := s.Update(task.ID, store.UpdateTaskRequest{Title: &title})

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
}

func TestTaskStore_UpdateEmptyTitleRejected(t *testing.T) {
	s, _ := newTaskStore(t)
	task, _ := s.Create(store.CreateTaskRequest{Title: "keep"})

	empty := ""
	_, _, err := s.Update(task.ID, store.UpdateTaskRequest{Title: &empty})

	assert.ErrorIs(t, err, store.ErrEmptyTitle)
	got, _ := s.Get(task.ID)
	assert.Equal(t, "keep", got.Title)
}

func TestTaskStore_UpdateUnknownID(t *testing.T) {
	s, _ := newTaskStore(t)

	_, ok, err := s.Update("missing", store.UpdateTaskRequest{})

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTaskStore_UpdateStatusMovesPartition(t *testing.T) {
	// Arrange
	s, _ := newTaskStore(t)
	task, _ := s.Create(store.CreateTaskRequest{Title: "move me"})

	// Act
	_, ok := s.UpdateStatus(task.ID, model.StatusCompleted)

	// Assert
	require.True(t, ok)
	parts := s.Partitions()
	assert.Empty(t, parts.NotStarted)
	require.Len(t, parts.Completed, 1)
	assert.Equal(t, "move me", parts.Completed[0].Title)
}

func TestTaskStore_DeleteIsIdempotent(t *testing.T) {
	s, _ := newTaskStore(t)
	task, _ := s.Create(store.CreateTaskRequest{Title: "gone"})

	s.Delete(task.ID)
	s.Delete(task.ID)

	assert.Equal(t, 0, s.Count())
}

func TestTaskStore_ClearCompleted(t *testing.T) {
	// Arrange
	s, _ := newTaskStore(t)
	done, _ := s.Create(store.CreateTaskRequest{Title: "done", Status: model.StatusCompleted})
	s.Create(store.CreateTaskRequest{Title: "open"})

	// Act
	removed := s.ClearCompleted()

	// Assert
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Count())
	_, ok := s.Get(done.ID)
	assert.False(t, ok)
}

func TestTaskStore_PersistsToCache(t *testing.T) {
	// Arrange
	cache := newMemCache()
	ctx := context.Background()
	s := store.NewTaskStore(ctx, cache, nil)
	task, _ := s.Create(store.CreateTaskRequest{Title: "survives restart"})

	// Act: a fresh store over the same cache sees the task.
	reloaded := store.NewTaskStore(ctx, cache, nil)

	// Assert
	got, ok := reloaded.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "survives restart", got.Title)
}

func TestTaskStore_Filters(t *testing.T) {
	// Arrange
	s, _ := newTaskStore(t)
	s.Create(store.CreateTaskRequest{Title: "a", Assignee: "Ana", Category: "work", Priority: model.PriorityHigh})
	s.Create(store.CreateTaskRequest{Title: "b", Assignee: "Bruno", Category: "home"})

	// Act & Assert
	assert.Len(t, s.ByAssignee("Ana"), 1)
	assert.Len(t, s.ByCategory("home"), 1)
	assert.Len(t, s.ByPriority(model.PriorityHigh), 1)
	assert.Len(t, s.ByPriority(model.PriorityMedium), 1)
	assert.Empty(t, s.ByAssignee("nobody"))
}

func TestTaskStore_DueWithin(t *testing.T) {
	// Arrange
	s, _ := newTaskStore(t)
	soon := time.Now().Add(2 * time.Hour)
	far := time.Now().Add(48 * time.Hour)
	past := time.Now().Add(-time.Hour)

	s.Create(store.CreateTaskRequest{Title: "due soon", DueDate: &soon})
	s.Create(store.CreateTaskRequest{Title: "due later", DueDate: &far})
	s.Create(store.CreateTaskRequest{Title: "overdue", DueDate: &past})
	s.Create(store.CreateTaskRequest{Title: "finished", DueDate: &soon, Status: model.StatusCompleted})
	s.Create(store.CreateTaskRequest{Title: "no due date"})

	// Act
	due := s.DueWithin(24 * time.Hour)

	// Assert
	require.Len(t, due, 1)
	assert.Equal(t, "due soon", due[0].Title)
}

func TestTaskStore_SubscribeSeesMutations(t *testing.T) {
	// Arrange
	s, _ := newTaskStore(t)
	var notified int
	unsubscribe := s.Subscribe(func([]model.Task) { notified++ })

	// Act
	s.Create(store.CreateTaskRequest{Title: "one"})
	s.ClearCompleted()
	unsubscribe()
	s.Create(store.CreateTaskRequest{Title: "two"})

	// Assert
	assert.Equal(t, 2, notified)
}
