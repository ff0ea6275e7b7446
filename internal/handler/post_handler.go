package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/sebaxchen/lookSocial/internal/events"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts     *store.PostStore
	users     store.UserProvider
	publisher *events.Publisher
}

func NewPostHandler(posts *store.PostStore, users store.UserProvider, publisher *events.Publisher) *PostHandler {
	return &PostHandler{posts: posts, users: users, publisher: publisher}
}

type publishRequest struct {
	Text   string   `json:"text" binding:"required"`
	Images []string `json:"images"`
}

// List returns the feed newest first, optionally filtered by hashtag.
func (h *PostHandler) List(c *gin.Context) {
	if tag := c.Query("tag"); tag != "" {
		c.JSON(http.StatusOK, gin.H{
			"posts":    h.posts.ByTag(tag),
			"realtime": h.posts.RealtimeAvailable(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":    h.posts.All(),
		"realtime": h.posts.RealtimeAvailable(),
	})
}

func (h *PostHandler) GetByID(c *gin.Context) {
	post, ok := h.posts.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Publish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	author, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	post, err := h.posts.Publish(c.Request.Context(), author, req.Text, req.Images)
	if err != nil {
		if errors.Is(err, store.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish post"})
		return
	}

	h.publisher.Publish(events.SubjectPostPublished, post)
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	h.posts.Delete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Like(c *gin.Context) {
	h.counter(c, h.posts.IncrementLike)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	h.counter(c, h.posts.DecrementLike)
}

func (h *PostHandler) Reshare(c *gin.Context) {
	h.counter(c, h.posts.IncrementReshare)
}

func (h *PostHandler) View(c *gin.Context) {
	h.counter(c, h.posts.IncrementViews)
}

func (h *PostHandler) Hashtags(c *gin.Context) {
	c.JSON(http.StatusOK, h.posts.Hashtags())
}

// counter applies one engagement bump and echoes the updated post.
func (h *PostHandler) counter(c *gin.Context, bump func(ctx context.Context, id string)) {
	id := c.Param("id")
	if _, ok := h.posts.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	bump(c.Request.Context(), id)

	post, _ := h.posts.Get(id)
	c.JSON(http.StatusOK, post)
}
