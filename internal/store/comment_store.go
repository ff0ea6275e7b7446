package store

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/state"
)

// CommentBackend is the remote comments collection.
type CommentBackend interface {
	InsertComment(ctx context.Context, comment model.Comment) error
	ListComments(ctx context.Context, postID string) ([]model.Comment, error)
}

// CommentStore keeps one append-only, creation-ordered collection per
// post. Unlike most flows, commenting while unauthenticated fails
// loudly; a failed remote write still falls back to a local comment.
type CommentStore struct {
	mu      sync.Mutex
	cells   map[string]*state.Cell[[]model.Comment]
	backend CommentBackend
	posts   *PostStore
	log     *log.Logger
}

func NewCommentStore(backend CommentBackend, posts *PostStore, logger *log.Logger) *CommentStore {
	return &CommentStore{
		cells:   make(map[string]*state.Cell[[]model.Comment]),
		backend: backend,
		posts:   posts,
		log:     ensureLogger(logger),
	}
}

// cellFor lazily creates the per-post cell, seeding it from the remote
// collection the first time a post's comments are requested.
func (s *CommentStore) cellFor(ctx context.Context, postID string) *state.Cell[[]model.Comment] {
	s.mu.Lock()
	cell, ok := s.cells[postID]
	if !ok {
		cell = state.NewCell([]model.Comment{})
		s.cells[postID] = cell
	}
	s.mu.Unlock()

	if !ok && s.backend != nil {
		if comments, err := s.backend.ListComments(ctx, postID); err != nil {
			s.log.Printf("⚠️  could not load comments for post %s: %v", postID, err)
		} else if comments != nil {
			cell.Set(comments)
		}
	}
	return cell
}

// For returns the post's comments ordered by creation time ascending.
func (s *CommentStore) For(ctx context.Context, postID string) []model.Comment {
	return s.cellFor(ctx, postID).Get()
}

// Add appends a comment and bumps the post's comment counter. An
// unauthenticated author is a hard error; everything else degrades to a
// local-only comment.
func (s *CommentStore) Add(ctx context.Context, author model.User, postID, text string) (model.Comment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Comment{}, nil
	}
	if author.ID == "" {
		return model.Comment{}, ErrNotAuthenticated
	}

	comment := model.Comment{
		ID:         newID(),
		PostID:     postID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       trimmed,
		CreatedAt:  time.Now(),
	}

	stored := false
	if s.backend != nil {
		if err := s.backend.InsertComment(ctx, comment); err != nil {
			s.log.Printf("⚠️  could not store comment remotely, keeping it locally: %v", err)
		} else {
			stored = true
		}
	}
	if !stored {
		comment.ID = fmt.Sprintf("%s-%d", postID, time.Now().UnixNano())
	}

	s.cellFor(ctx, postID).Update(func(comments []model.Comment) []model.Comment {
		return append(append([]model.Comment{}, comments...), comment)
	})
	s.posts.AdjustComments(ctx, postID, 1)
	return comment, nil
}
