package store

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/state"
	"github.com/sebaxchen/lookSocial/internal/storage"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserProvider is the account lookup surface handlers depend on.
type UserProvider interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
}

// UserStore keeps registered accounts. Accounts live in the local cache
// only; password hashes never leave this process.
type UserStore struct {
	cell *state.Cell[[]model.User]
	log  *log.Logger
}

func NewUserStore(ctx context.Context, cache KeyValue, logger *log.Logger) *UserStore {
	logger = ensureLogger(logger)

	var users []model.User
	if cache != nil {
		if err := cache.Load(ctx, storage.KeyUsers, &users); err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Printf("⚠️  failed to load cached users: %v", err)
		}
	}

	cell := state.NewCell(users)
	cell.Subscribe(saver[[]model.User](cache, storage.KeyUsers, logger))
	return &UserStore{cell: cell, log: logger}
}

func (s *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	if email == "" {
		return model.User{}, ErrEmptyName
	}
	if _, err := s.FindByEmail(ctx, email); err == nil {
		return model.User{}, ErrEmailTaken
	}

	user.Email = email
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	s.cell.Update(func(users []model.User) []model.User {
		next := make([]model.User, 0, len(users)+1)
		next = append(next, users...)
		return append(next, user)
	})
	return user, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.cell.Get() {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *UserStore) GetByID(_ context.Context, id string) (model.User, error) {
	for _, u := range s.cell.Get() {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *UserStore) All() []model.User {
	return s.cell.Get()
}
