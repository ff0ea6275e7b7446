package store_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommentBackend struct {
	mu       sync.Mutex
	comments map[string][]model.Comment
	fail     bool
}

func newFakeCommentBackend() *fakeCommentBackend {
	return &fakeCommentBackend{comments: make(map[string][]model.Comment)}
}

func (f *fakeCommentBackend) InsertComment(_ context.Context, comment model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errBackendDown
	}
	f.comments[comment.PostID] = append(f.comments[comment.PostID], comment)
	return nil
}

func (f *fakeCommentBackend) ListComments(_ context.Context, postID string) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errBackendDown
	}
	return append([]model.Comment{}, f.comments[postID]...), nil
}

func newCommentStore(backend store.CommentBackend) (*store.CommentStore, *store.PostStore) {
	posts := store.NewPostStore(nil, nil)
	return store.NewCommentStore(backend, posts, nil), posts
}

func TestCommentStore_AddBlankIsSilentNoOp(t *testing.T) {
	// Arrange
	s, posts := newCommentStore(nil)
	post, _ := posts.Publish(context.Background(), author(), "a post", nil)

	// Act
	comment, err := s.Add(context.Background(), author(), post.ID, "   ")

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, comment.ID)
	assert.Empty(t, s.For(context.Background(), post.ID))
	got, _ := posts.Get(post.ID)
	assert.Equal(t, 0, got.Comments)
}

func TestCommentStore_AddUnauthenticated(t *testing.T) {
	s, _ := newCommentStore(nil)

	_, err := s.Add(context.Background(), model.User{}, "p1", "hello")

	assert.ErrorIs(t, err, store.ErrNotAuthenticated)
}

func TestCommentStore_AddBumpsPostCounter(t *testing.T) {
	// Arrange
	s, posts := newCommentStore(nil)
	ctx := context.Background()
	post, _ := posts.Publish(ctx, author(), "a post", nil)

	// Act
	comment, err := s.Add(ctx, author(), post.ID, "nice one")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "nice one", comment.Text)
	assert.Equal(t, "Ana", comment.AuthorName)
	assert.Len(t, s.For(ctx, post.ID), 1)
	got, _ := posts.Get(post.ID)
	assert.Equal(t, 1, got.Comments)
}

func TestCommentStore_FallbackIDWhenRemoteFails(t *testing.T) {
	// Arrange
	backend := newFakeCommentBackend()
	backend.fail = true
	s, posts := newCommentStore(backend)
	ctx := context.Background()
	post, _ := posts.Publish(ctx, author(), "a post", nil)

	// Act
	comment, err := s.Add(ctx, author(), post.ID, "offline comment")

	// Assert: local fallback id carries the post id prefix.
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(comment.ID, post.ID+"-"))
	assert.Len(t, s.For(ctx, post.ID), 1)
}

func TestCommentStore_SeedsFromRemoteOnFirstAccess(t *testing.T) {
	// Arrange
	backend := newFakeCommentBackend()
	backend.comments["p1"] = []model.Comment{
		{ID: "c1", PostID: "p1", Text: "from remote"},
	}
	s, _ := newCommentStore(backend)

	// Act
	comments := s.For(context.Background(), "p1")

	// Assert
	require.Len(t, comments, 1)
	assert.Equal(t, "from remote", comments[0].Text)
}
