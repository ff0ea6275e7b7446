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

// UpdateMemberRequest is a partial update: nil fields are left untouched.
type UpdateMemberRequest struct {
	Name   *string
	Email  *string
	Role   *string
	Avatar *string
	Color  *string
}

// TeamStore owns the team-member collection.
type TeamStore struct {
	cell   *state.Cell[[]model.TeamMember]
	colors *palette.Palette
	log    *log.Logger
}

func NewTeamStore(ctx context.Context, cache KeyValue, colors *palette.Palette, logger *log.Logger) *TeamStore {
	logger = ensureLogger(logger)

	var members []model.TeamMember
	if cache != nil {
		if err := cache.Load(ctx, storage.KeyTeamMembers, &members); err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Printf("⚠️  failed to load cached team members: %v", err)
		}
	}

	cell := state.NewCell(members)
	cell.Subscribe(saver[[]model.TeamMember](cache, storage.KeyTeamMembers, logger))

	for _, m := range members {
		if m.Color != "" {
			colors.SetColor(m.Name, m.Color)
		}
	}
	return &TeamStore{cell: cell, colors: colors, log: logger}
}

// Add appends a member, filling in id, join date, avatar initials, and a
// palette color when absent.
func (s *TeamStore) Add(member model.TeamMember) (model.TeamMember, error) {
	if member.Name == "" {
		return model.TeamMember{}, ErrEmptyName
	}
	if member.ID == "" {
		member.ID = newID()
	}
	if member.JoinDate.IsZero() {
		member.JoinDate = time.Now()
	}
	if member.Avatar == "" {
		member.Avatar = model.Initials(member.Name)
	}
	if member.Color == "" {
		member.Color = s.colors.ColorFor(member.Name)
	} else {
		s.colors.SetColor(member.Name, member.Color)
	}

	s.cell.Update(func(members []model.TeamMember) []model.TeamMember {
		return append(append([]model.TeamMember{}, members...), member)
	})
	return member, nil
}

func (s *TeamStore) Update(id string, req UpdateMemberRequest) (model.TeamMember, bool) {
	var updated model.TeamMember
	found := false
	s.cell.Update(func(members []model.TeamMember) []model.TeamMember {
		next := make([]model.TeamMember, len(members))
		copy(next, members)
		for i, m := range next {
			if m.ID != id {
				continue
			}
			if req.Name != nil {
				m.Name = *req.Name
			}
			if req.Email != nil {
				m.Email = *req.Email
			}
			if req.Role != nil {
				m.Role = *req.Role
			}
			if req.Avatar != nil {
				m.Avatar = *req.Avatar
			}
			if req.Color != nil {
				m.Color = *req.Color
				s.colors.SetColor(m.Name, m.Color)
			}
			next[i] = m
			updated = m
			found = true
			break
		}
		return next
	})
	return updated, found
}

func (s *TeamStore) Remove(id string) {
	s.cell.Update(func(members []model.TeamMember) []model.TeamMember {
		next := make([]model.TeamMember, 0, len(members))
		for _, m := range members {
			if m.ID != id {
				next = append(next, m)
			}
		}
		return next
	})
}

func (s *TeamStore) RemoveByName(name string) {
	s.cell.Update(func(members []model.TeamMember) []model.TeamMember {
		next := make([]model.TeamMember, 0, len(members))
		for _, m := range members {
			if m.Name != name {
				next = append(next, m)
			}
		}
		return next
	})
}

func (s *TeamStore) Get(id string) (model.TeamMember, bool) {
	for _, m := range s.cell.Get() {
		if m.ID == id {
			return m, true
		}
	}
	return model.TeamMember{}, false
}

func (s *TeamStore) GetByName(name string) (model.TeamMember, bool) {
	for _, m := range s.cell.Get() {
		if m.Name == name {
			return m, true
		}
	}
	return model.TeamMember{}, false
}

func (s *TeamStore) All() []model.TeamMember {
	return s.cell.Get()
}

// MemberColor prefers the color stored on the member, falling back to
// the palette assignment for the name.
func (s *TeamStore) MemberColor(name string) string {
	if m, ok := s.GetByName(name); ok && m.Color != "" {
		return m.Color
	}
	return s.colors.ColorFor(name)
}

// EnsureMember enrolls an authenticated user into the team on first
// sign-in. Existing names are left alone.
func (s *TeamStore) EnsureMember(user model.User) {
	if _, ok := s.GetByName(user.Name); ok {
		return
	}
	if _, err := s.Add(model.TeamMember{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		s.log.Printf("⚠️  could not enroll %q into the team: %v", user.Name, err)
	}
}
