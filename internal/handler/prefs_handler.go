package handler

import (
	"net/http"

	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
)

type PrefsHandler struct {
	prefs *store.PrefsStore
}

func NewPrefsHandler(prefs *store.PrefsStore) *PrefsHandler {
	return &PrefsHandler{prefs: prefs}
}

type prefsRequest struct {
	HomeVisible *bool `json:"home_visible" binding:"required"`
}

func (h *PrefsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.prefs.Get())
}

func (h *PrefsHandler) Set(c *gin.Context) {
	var req prefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	c.JSON(http.StatusOK, h.prefs.SetHomeVisible(*req.HomeVisible))
}

func (h *PrefsHandler) Toggle(c *gin.Context) {
	c.JSON(http.StatusOK, h.prefs.ToggleHomeVisible())
}
