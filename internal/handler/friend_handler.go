package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/sebaxchen/lookSocial/internal/events"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friends   *store.FriendStore
	publisher *events.Publisher
}

func NewFriendHandler(friends *store.FriendStore, publisher *events.Publisher) *FriendHandler {
	return &FriendHandler{friends: friends, publisher: publisher}
}

// Users lists the shared user directory with each user's relationship
// to the caller.
func (h *FriendHandler) Users(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	h.friends.RefreshUsers(c.Request.Context())
	h.friends.RefreshRequests(c.Request.Context(), userID)

	type userWithStatus struct {
		ID     string                 `json:"id"`
		Email  string                 `json:"email"`
		Name   string                 `json:"name"`
		Status store.RelationshipView `json:"relationship"`
	}

	out := []userWithStatus{}
	for _, u := range h.friends.Users() {
		if u.ID == userID {
			continue
		}
		out = append(out, userWithStatus{
			ID:     u.ID,
			Email:  u.Email,
			Name:   u.Name,
			Status: h.friends.StatusFor(userID, u.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    out,
		"realtime": h.friends.RealtimeAvailable(),
	})
}

func (h *FriendHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.friends.StatusFor(userID, c.Param("id")))
}

func (h *FriendHandler) Request(c *gin.Context) {
	h.mutate(c, h.friends.SendRequest, events.SubjectFriendRequested)
}

func (h *FriendHandler) Accept(c *gin.Context) {
	h.mutate(c, h.friends.Accept, events.SubjectFriendResolved)
}

func (h *FriendHandler) Reject(c *gin.Context) {
	h.mutate(c, h.friends.Reject, events.SubjectFriendResolved)
}

func (h *FriendHandler) mutate(c *gin.Context, op func(ctx context.Context, currentID, targetID string) error, subject string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	if err := op(c.Request.Context(), userID, targetID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		case errors.Is(err, store.ErrFriendsUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Friends are unavailable while offline"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	h.publisher.Publish(subject, gin.H{"from": userID, "to": targetID})
	c.JSON(http.StatusOK, h.friends.StatusFor(userID, targetID))
}
