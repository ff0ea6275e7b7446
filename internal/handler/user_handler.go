package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sebaxchen/lookSocial/internal/auth"
	"github.com/sebaxchen/lookSocial/internal/middleware"
	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TeamEnroller auto-enrolls an authenticated account into the team roster.
type TeamEnroller interface {
	EnsureMember(user model.User)
}

// UserMirror pushes the account profile to the shared user directory.
type UserMirror interface {
	MirrorUser(ctx context.Context, user model.User)
}

type UserHandler struct {
	users   store.UserProvider
	team    TeamEnroller
	friends UserMirror
}

func NewUserHandler(users store.UserProvider, team TeamEnroller, friends UserMirror) *UserHandler {
	return &UserHandler{users: users, team: team, friends: friends}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.Email = strings.ToLower(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hash error"})
		return
	}

	user := model.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Name:           model.DisplayName(req.Name, req.Email),
		HashedPassword: string(hash),
		Role:           model.RoleUser,
	}

	created, err := h.users.Create(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
		return
	}

	h.enroll(c.Request.Context(), created)

	c.JSON(http.StatusCreated, toUserResponse(created))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	h.enroll(c.Request.Context(), user)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// enroll keeps the team roster and the shared user directory in step
// with the account that just authenticated.
func (h *UserHandler) enroll(ctx context.Context, user model.User) {
	if h.team != nil {
		h.team.EnsureMember(user)
	}
	if h.friends != nil {
		h.friends.MirrorUser(ctx, user)
	}
}

// currentUserID pulls the authenticated user's ID out of the context
// set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return "", false
	}
	return userID.String(), true
}
