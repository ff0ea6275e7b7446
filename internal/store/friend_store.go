package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/state"
)

var ErrFriendsUnavailable = errors.New("friends are not available right now")

// FriendBackend is the remote side of the friends feature: the
// registered-user directory and the friend-request collection keyed by
// pair id.
type FriendBackend interface {
	UpsertFriendRequest(ctx context.Context, req model.FriendRequest) error
	UpdateFriendStatus(ctx context.Context, pairID string, status model.FriendRequestStatus, updatedAt time.Time) error
	ListFriendRequests(ctx context.Context, userID string) ([]model.FriendRequest, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpsertUser(ctx context.Context, user model.User) error
}

// RelationshipView is the friend state between the current user and a
// target, as the current user sees it.
type RelationshipView struct {
	Status      model.Relationship `json:"status"`
	RequesterID string             `json:"requester_id,omitempty"`
	RequestID   string             `json:"request_id,omitempty"`
}

// FriendStore mirrors the remote user directory and friend requests.
// Friend mutations require the remote: they fail loudly instead of
// falling back, because a one-sided friendship is worse than none.
type FriendStore struct {
	users    *state.Cell[[]model.User]
	requests *state.Cell[map[string]model.FriendRequest]
	realtime *state.Cell[bool]
	backend  FriendBackend
	log      *log.Logger
}

func NewFriendStore(backend FriendBackend, logger *log.Logger) *FriendStore {
	return &FriendStore{
		users:    state.NewCell([]model.User{}),
		requests: state.NewCell(map[string]model.FriendRequest{}),
		realtime: state.NewCell(backend != nil),
		backend:  backend,
		log:      ensureLogger(logger),
	}
}

// RefreshUsers replaces the user directory wholesale from the remote.
func (s *FriendStore) RefreshUsers(ctx context.Context) {
	if s.backend == nil {
		return
	}
	users, err := s.backend.ListUsers(ctx)
	if err != nil {
		s.log.Printf("⚠️  could not list registered users: %v", err)
		s.realtime.Set(false)
		return
	}
	s.users.Set(users)
	s.realtime.Set(true)
}

// RefreshRequests merges every request the user participates in into
// the request cache. The cache is shared by every user of the process,
// so a per-user listing must never evict other pairs.
func (s *FriendStore) RefreshRequests(ctx context.Context, userID string) {
	if s.backend == nil || userID == "" {
		return
	}
	requests, err := s.backend.ListFriendRequests(ctx, userID)
	if err != nil {
		s.log.Printf("⚠️  could not list friend requests: %v", err)
		s.realtime.Set(false)
		return
	}
	s.requests.Update(func(m map[string]model.FriendRequest) map[string]model.FriendRequest {
		next := make(map[string]model.FriendRequest, len(m)+len(requests))
		for k, v := range m {
			next[k] = v
		}
		for _, r := range requests {
			next[r.ID] = r
		}
		return next
	})
	s.realtime.Set(true)
}

func (s *FriendStore) Users() []model.User {
	return s.users.Get()
}

// StatusFor resolves the relationship between two users. Rejected
// requests read as "none" for both sides.
func (s *FriendStore) StatusFor(currentID, targetID string) RelationshipView {
	if currentID == "" {
		return RelationshipView{Status: model.RelationNone}
	}
	pairID := model.FriendPairID(currentID, targetID)
	req, ok := s.requests.Get()[pairID]
	if !ok {
		return RelationshipView{Status: model.RelationNone}
	}
	switch req.Status {
	case model.FriendAccepted:
		return RelationshipView{Status: model.RelationFriends, RequesterID: req.RequesterID, RequestID: req.ID}
	case model.FriendPending:
		if req.RequesterID == currentID {
			return RelationshipView{Status: model.RelationPending, RequesterID: req.RequesterID, RequestID: req.ID}
		}
		return RelationshipView{Status: model.RelationIncoming, RequesterID: req.RequesterID, RequestID: req.ID}
	}
	return RelationshipView{Status: model.RelationNone}
}

// SendRequest creates or revives the pending request for the pair.
// Requests to oneself, and pairs already pending or friends, are
// silent no-ops.
func (s *FriendStore) SendRequest(ctx context.Context, currentID, targetID string) error {
	if currentID == "" {
		return ErrNotAuthenticated
	}
	if s.backend == nil || !s.realtime.Get() {
		return ErrFriendsUnavailable
	}
	if currentID == targetID {
		return nil
	}
	// the no-op guards must see the backend's current view of the pair
	s.RefreshRequests(ctx, currentID)
	if !s.realtime.Get() {
		return ErrFriendsUnavailable
	}
	current := s.StatusFor(currentID, targetID)
	if current.Status == model.RelationPending || current.Status == model.RelationFriends {
		return nil
	}

	now := time.Now()
	req := model.FriendRequest{
		ID:           model.FriendPairID(currentID, targetID),
		Participants: []string{currentID, targetID},
		RequesterID:  currentID,
		Status:       model.FriendPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.backend.UpsertFriendRequest(ctx, req); err != nil {
		s.realtime.Set(false)
		return fmt.Errorf("send friend request: %w", err)
	}
	s.requests.Update(func(m map[string]model.FriendRequest) map[string]model.FriendRequest {
		next := make(map[string]model.FriendRequest, len(m)+1)
		for k, v := range m {
			next[k] = v
		}
		next[req.ID] = req
		return next
	})
	return nil
}

func (s *FriendStore) Accept(ctx context.Context, currentID, targetID string) error {
	return s.resolve(ctx, currentID, targetID, model.FriendAccepted)
}

func (s *FriendStore) Reject(ctx context.Context, currentID, targetID string) error {
	return s.resolve(ctx, currentID, targetID, model.FriendRejected)
}

func (s *FriendStore) resolve(ctx context.Context, currentID, targetID string, status model.FriendRequestStatus) error {
	if currentID == "" {
		return ErrNotAuthenticated
	}
	if s.backend == nil || !s.realtime.Get() {
		return ErrFriendsUnavailable
	}
	// the pending check must see the backend's current view of the pair
	s.RefreshRequests(ctx, currentID)
	if !s.realtime.Get() {
		return ErrFriendsUnavailable
	}

	pairID := model.FriendPairID(currentID, targetID)
	req, ok := s.requests.Get()[pairID]
	if !ok || req.Status != model.FriendPending {
		return nil
	}
	// the requester cannot accept their own request
	if status == model.FriendAccepted && req.RequesterID == currentID {
		return nil
	}

	now := time.Now()
	if err := s.backend.UpdateFriendStatus(ctx, pairID, status, now); err != nil {
		s.realtime.Set(false)
		return fmt.Errorf("update friend request: %w", err)
	}
	req.Status = status
	req.UpdatedAt = now
	s.requests.Update(func(m map[string]model.FriendRequest) map[string]model.FriendRequest {
		next := make(map[string]model.FriendRequest, len(m))
		for k, v := range m {
			next[k] = v
		}
		next[pairID] = req
		return next
	})
	return nil
}

// MirrorUser pushes a registered user into the remote directory,
// best-effort.
func (s *FriendStore) MirrorUser(ctx context.Context, user model.User) {
	if s.backend == nil {
		return
	}
	if err := s.backend.UpsertUser(ctx, user); err != nil {
		s.log.Printf("⚠️  could not mirror user %s to remote directory: %v", user.ID, err)
		s.realtime.Set(false)
	}
}

// RealtimeAvailable reports whether the friends feature currently has a
// working remote.
func (s *FriendStore) RealtimeAvailable() bool {
	return s.realtime.Get()
}
