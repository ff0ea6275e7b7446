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

func newTeamStore(t *testing.T) *store.TeamStore {
	t.Helper()
	return store.NewTeamStore(context.Background(), newMemCache(), palette.New(), nil)
}

func TestTeamStore_AddDefaults(t *testing.T) {
	// Arrange
	s := newTeamStore(t)

	// Act
	member, err := s.Add(model.TeamMember{Name: "Ana García"})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, member.ID)
	assert.Equal(t, "AG", member.Avatar)
	assert.NotEmpty(t, member.Color)
	assert.False(t, member.JoinDate.IsZero())
}

func TestTeamStore_AddEmptyName(t *testing.T) {
	s := newTeamStore(t)

	_, err := s.Add(model.TeamMember{})

	assert.ErrorIs(t, err, store.ErrEmptyName)
}

func TestTeamStore_MemberColorIsStable(t *testing.T) {
	// Arrange
	s := newTeamStore(t)
	member, _ := s.Add(model.TeamMember{Name: "Bruno"})

	// Act & Assert
	assert.Equal(t, member.Color, s.MemberColor("Bruno"))
	assert.Equal(t, member.Color, s.MemberColor("Bruno"))
}

func TestTeamStore_UpdateColorRepins(t *testing.T) {
	// Arrange
	s := newTeamStore(t)
	member, _ := s.Add(model.TeamMember{Name: "Carla"})

	// Act
	color := "#101010"
	updated, ok := s.Update(member.ID, store.UpdateMemberRequest{Color: &color})

	// Assert
	require.True(t, ok)
	assert.Equal(t, "#101010", updated.Color)
	assert.Equal(t, "#101010", s.MemberColor("Carla"))
}

func TestTeamStore_RemoveByName(t *testing.T) {
	s := newTeamStore(t)
	s.Add(model.TeamMember{Name: "Doomed"})

	s.RemoveByName("Doomed")

	_, ok := s.GetByName("Doomed")
	assert.False(t, ok)
}

func TestTeamStore_EnsureMemberEnrollsOnce(t *testing.T) {
	// Arrange
	s := newTeamStore(t)
	user := model.User{ID: "u1", Name: "Eva", Email: "eva@example.com", Role: model.RoleUser}

	// Act
	s.EnsureMember(user)
	s.EnsureMember(user)

	// Assert
	assert.Len(t, s.All(), 1)
	member, ok := s.GetByName("Eva")
	require.True(t, ok)
	assert.Equal(t, "u1", member.ID)
	assert.Equal(t, "eva@example.com", member.Email)
	assert.Equal(t, "E", member.Avatar)
}
