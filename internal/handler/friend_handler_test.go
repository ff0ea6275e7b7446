package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sebaxchen/lookSocial/internal/handler"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFriendUsers_EmptyDirectoryIsEmptyArray(t *testing.T) {
	// Arrange: no remote, so the directory has nobody but the caller.
	router := newAuthedRouter(uuid.New())
	friends := store.NewFriendStore(nil, nil)
	friendHandler := handler.NewFriendHandler(friends, nil)
	router.GET("/users", friendHandler.Users)

	// Act
	req, _ := http.NewRequest("GET", "/users", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert: an empty list, never null.
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"users":[]`)
}
