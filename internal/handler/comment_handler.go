package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *store.CommentStore
	users    store.UserProvider
}

func NewCommentHandler(comments *store.CommentStore, users store.UserProvider) *CommentHandler {
	return &CommentHandler{comments: comments, users: users}
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *CommentHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.comments.For(c.Request.Context(), c.Param("id")))
}

func (h *CommentHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	author, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), author, c.Param("id"), req.Text)
	if err != nil {
		if errors.Is(err, store.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}
