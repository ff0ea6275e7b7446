package handler

import (
	"errors"
	"net/http"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	files *store.FileStore
}

func NewFileHandler(files *store.FileStore) *FileHandler {
	return &FileHandler{files: files}
}

type fileRequest struct {
	Name       string `json:"name" binding:"required"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	UploadedBy string `json:"uploaded_by"`
	URL        string `json:"url"`
}

type shareRequest struct {
	Members []string `json:"members"`
	Groups  []string `json:"groups"`
}

func (h *FileHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.files.All())
}

func (h *FileHandler) Add(c *gin.Context) {
	var req fileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	file, err := h.files.Add(model.SharedFile{
		Name:       req.Name,
		Type:       req.Type,
		Size:       req.Size,
		UploadedBy: req.UploadedBy,
		URL:        req.URL,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add file"})
		return
	}

	c.JSON(http.StatusCreated, file)
}

func (h *FileHandler) GetByID(c *gin.Context) {
	file, ok := h.files.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	c.JSON(http.StatusOK, file)
}

func (h *FileHandler) Delete(c *gin.Context) {
	h.files.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Share replaces the member and group share lists of a file.
func (h *FileHandler) Share(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	file, ok := h.files.Share(c.Param("id"), req.Members, req.Groups)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	c.JSON(http.StatusOK, file)
}
