package store_test

import (
	"context"
	"testing"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *store.FileStore {
	t.Helper()
	return store.NewFileStore(context.Background(), newMemCache(), nil)
}

func TestFileStore_AddDefaults(t *testing.T) {
	// Arrange
	s := newFileStore(t)

	// Act
	file, err := s.Add(model.SharedFile{Name: "roadmap.pdf", Type: "application/pdf", Size: 2048})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, file.ID)
	assert.False(t, file.UploadedAt.IsZero())
	assert.NotNil(t, file.SharedWithMembers)
	assert.NotNil(t, file.SharedWithGroups)
	assert.Empty(t, file.SharedWithMembers)
}

func TestFileStore_AddEmptyName(t *testing.T) {
	s := newFileStore(t)

	_, err := s.Add(model.SharedFile{})

	assert.ErrorIs(t, err, store.ErrEmptyName)
}

func TestFileStore_ShareReplacesLists(t *testing.T) {
	// Arrange
	s := newFileStore(t)
	file, _ := s.Add(model.SharedFile{Name: "notes.txt"})
	s.Share(file.ID, []string{"Ana"}, nil)

	// Act
	updated, ok := s.Share(file.ID, []string{"Bruno", "Carla"}, []string{"g1"})

	// Assert
	require.True(t, ok)
	assert.Equal(t, []string{"Bruno", "Carla"}, updated.SharedWithMembers)
	assert.Equal(t, []string{"g1"}, updated.SharedWithGroups)
}

func TestFileStore_ShareUnknownID(t *testing.T) {
	s := newFileStore(t)

	_, ok := s.Share("missing", nil, nil)

	assert.False(t, ok)
}

func TestFileStore_Delete(t *testing.T) {
	s := newFileStore(t)
	file, _ := s.Add(model.SharedFile{Name: "doomed.bin"})

	s.Delete(file.ID)

	_, ok := s.Get(file.ID)
	assert.False(t, ok)
	assert.Empty(t, s.All())
}
