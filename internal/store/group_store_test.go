package store_test

import (
	"context"
	"testing"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/palette"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupStore(t *testing.T) (*store.GroupStore, *memCache) {
	t.Helper()
	cache := newMemCache()
	return store.NewGroupStore(context.Background(), cache, palette.New(), nil), cache
}

func TestGroupStore_CreateAssignsColorOnce(t *testing.T) {
	// Arrange
	s, _ := newGroupStore(t)

	// Act
	group, err := s.Create("Marketing", nil, "")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, group.Color)
	assert.Equal(t, group.Color, s.ColorFor("Marketing"))
	assert.NotNil(t, group.Tasks)
	assert.Empty(t, group.Tasks)
}

func TestGroupStore_CreateKeepsExplicitColor(t *testing.T) {
	s, _ := newGroupStore(t)

	group, err := s.Create("Design", nil, "#abcdef")

	require.NoError(t, err)
	assert.Equal(t, "#abcdef", group.Color)
	assert.Equal(t, "#abcdef", s.ColorFor("Design"))
}

func TestGroupStore_CreateEmptyName(t *testing.T) {
	s, _ := newGroupStore(t)

	_, err := s.Create("", nil, "")

	assert.ErrorIs(t, err, store.ErrEmptyName)
}

func TestGroupStore_AssignTaskIsExclusive(t *testing.T) {
	// Arrange
	s, _ := newGroupStore(t)
	a, _ := s.Create("A", nil, "")
	b, _ := s.Create("B", nil, "")
	task := model.Task{ID: "t1", Title: "shared work", Priority: model.PriorityHigh, Status: model.StatusInProgress}

	// Act: assign to A, then move to B.
	require.True(t, s.AssignTask(a.ID, task))
	require.True(t, s.AssignTask(b.ID, task))

	// Assert
	groupA, _ := s.Get(a.ID)
	groupB, _ := s.Get(b.ID)
	assert.Empty(t, groupA.Tasks)
	require.Len(t, groupB.Tasks, 1)
	assert.Equal(t, "t1", groupB.Tasks[0].ID)
	assert.Equal(t, "shared work", groupB.Tasks[0].Title)

	owner, ok := s.GroupOf("t1")
	require.True(t, ok)
	assert.Equal(t, b.ID, owner.ID)
}

func TestGroupStore_AssignTaskUnknownGroup(t *testing.T) {
	s, _ := newGroupStore(t)

	assert.False(t, s.AssignTask("missing", model.Task{ID: "t1"}))
}

func TestGroupStore_RemoveTaskClearsEveryCache(t *testing.T) {
	// Arrange
	s, _ := newGroupStore(t)
	g, _ := s.Create("A", nil, "")
	s.AssignTask(g.ID, model.Task{ID: "t1", Title: "doomed"})

	// Act
	s.RemoveTask("t1")

	// Assert
	got, _ := s.Get(g.ID)
	assert.Empty(t, got.Tasks)
	_, ok := s.GroupOf("t1")
	assert.False(t, ok)
}

func TestGroupStore_UpdatePartial(t *testing.T) {
	// Arrange
	s, _ := newGroupStore(t)
	g, _ := s.Create("Old Name", []model.GroupMember{{Name: "Ana"}}, "")

	// Act
	name := "New Name"
	updated, ok, err := s.Update(g.ID, store.UpdateGroupRequest{Name: &name})

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "New Name", updated.Name)
	assert.Len(t, updated.Members, 1)
	assert.Equal(t, g.Color, updated.Color)
}

func TestGroupStore_ColorSurvivesReload(t *testing.T) {
	// Arrange
	cache := newMemCache()
	ctx := context.Background()
	s := store.NewGroupStore(ctx, cache, palette.New(), nil)
	group, _ := s.Create("Persistent", nil, "")

	// Act: a fresh store and palette over the same cache.
	reloaded := store.NewGroupStore(ctx, cache, palette.New(), nil)

	// Assert
	assert.Equal(t, group.Color, reloaded.ColorFor("Persistent"))
}

func TestGroupStore_Delete(t *testing.T) {
	s, _ := newGroupStore(t)
	g, _ := s.Create("Doomed", nil, "")

	s.Delete(g.ID)

	_, ok := s.Get(g.ID)
	assert.False(t, ok)
	assert.Empty(t, s.All())
}
