package store

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/state"
	"github.com/sebaxchen/lookSocial/internal/views"
)

// PostBackend is the remote document collection behind the feed. A nil
// backend means local-only mode from the start.
type PostBackend interface {
	InsertPost(ctx context.Context, post model.Post) error
	DeletePost(ctx context.Context, id string) error
	AdjustPostCounter(ctx context.Context, id, field string, delta int) error
	ListPosts(ctx context.Context) ([]model.Post, error)
	WatchPosts(ctx context.Context, onChange func()) error
}

// PostStore owns the feed. Writes go remote-first; when the remote
// errors the mutation is applied to local state only, a warning is
// logged, and the realtime flag flips to false. Failed writes are never
// replayed: local and remote may stay divergent until the next
// wholesale refresh.
type PostStore struct {
	cell     *state.Cell[[]model.Post]
	sorted   *state.Derived[[]model.Post, []model.Post]
	hashtags *state.Derived[[]model.Post, []views.TagCount]
	realtime *state.Cell[bool]
	backend  PostBackend
	log      *log.Logger
}

func NewPostStore(backend PostBackend, logger *log.Logger) *PostStore {
	logger = ensureLogger(logger)
	cell := state.NewCell([]model.Post{})
	return &PostStore{
		cell: cell,
		sorted: state.Derive(cell, func(posts []model.Post) []model.Post {
			sorted := make([]model.Post, len(posts))
			copy(sorted, posts)
			sort.SliceStable(sorted, func(i, j int) bool {
				return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
			})
			return sorted
		}),
		hashtags: state.Derive(cell, views.AggregateHashtags),
		realtime: state.NewCell(backend != nil),
		backend:  backend,
		log:      logger,
	}
}

// StartSync fetches the remote feed and keeps replacing the local
// collection wholesale for every remote change until ctx is done.
func (s *PostStore) StartSync(ctx context.Context) {
	if s.backend == nil {
		return
	}
	s.refresh(ctx)
	go func() {
		if err := s.backend.WatchPosts(ctx, func() { s.refresh(ctx) }); err != nil && ctx.Err() == nil {
			s.log.Printf("⚠️  post feed watch stopped: %v", err)
			s.realtime.Set(false)
		}
	}()
}

func (s *PostStore) refresh(ctx context.Context) {
	posts, err := s.backend.ListPosts(ctx)
	if err != nil {
		s.log.Printf("⚠️  could not refresh posts from remote: %v", err)
		s.realtime.Set(false)
		return
	}
	s.cell.Set(posts)
	s.realtime.Set(true)
}

// Publish creates a post with normalized hashtags extracted from the
// text and prepends it to the feed.
func (s *PostStore) Publish(ctx context.Context, author model.User, text string, images []string) (model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return model.Post{}, ErrEmptyTitle
	}
	if images == nil {
		images = []string{}
	}

	post := model.Post{
		ID:         newID(),
		Text:       text,
		Images:     images,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Tags:       views.ExtractTags(text),
		CreatedAt:  time.Now(),
	}

	s.attemptRemote(ctx, "publish post", func(ctx context.Context) error {
		return s.backend.InsertPost(ctx, post)
	})
	s.cell.Update(func(posts []model.Post) []model.Post {
		return append([]model.Post{post}, posts...)
	})
	return post, nil
}

func (s *PostStore) Delete(ctx context.Context, id string) {
	s.attemptRemote(ctx, "delete post", func(ctx context.Context) error {
		return s.backend.DeletePost(ctx, id)
	})
	s.cell.Update(func(posts []model.Post) []model.Post {
		next := make([]model.Post, 0, len(posts))
		for _, p := range posts {
			if p.ID != id {
				next = append(next, p)
			}
		}
		return next
	})
}

func (s *PostStore) IncrementLike(ctx context.Context, id string) {
	s.adjustCounter(ctx, id, "likes", 1)
}

// DecrementLike never takes likes below zero.
func (s *PostStore) DecrementLike(ctx context.Context, id string) {
	if p, ok := s.Get(id); !ok || p.Likes == 0 {
		return
	}
	s.adjustCounter(ctx, id, "likes", -1)
}

func (s *PostStore) IncrementReshare(ctx context.Context, id string) {
	s.adjustCounter(ctx, id, "reshares", 1)
}

func (s *PostStore) IncrementViews(ctx context.Context, id string) {
	s.adjustCounter(ctx, id, "views", 1)
}

// AdjustComments keeps the denormalized comment counter in step with
// the comments collection.
func (s *PostStore) AdjustComments(ctx context.Context, id string, delta int) {
	s.adjustCounter(ctx, id, "comments", delta)
}

func (s *PostStore) adjustCounter(ctx context.Context, id, field string, delta int) {
	s.attemptRemote(ctx, "adjust "+field, func(ctx context.Context) error {
		return s.backend.AdjustPostCounter(ctx, id, field, delta)
	})
	s.cell.Update(func(posts []model.Post) []model.Post {
		next := make([]model.Post, len(posts))
		copy(next, posts)
		for i, p := range next {
			if p.ID != id {
				continue
			}
			switch field {
			case "likes":
				p.Likes += delta
			case "reshares":
				p.Reshares += delta
			case "views":
				p.Views += delta
			case "comments":
				p.Comments += delta
			}
			next[i] = p
			break
		}
		return next
	})
}

// attemptRemote runs the remote write when a backend is configured. On
// failure it logs, flips the realtime flag, and lets the caller proceed
// with the local mutation.
func (s *PostStore) attemptRemote(ctx context.Context, op string, fn func(context.Context) error) {
	if s.backend == nil {
		return
	}
	if err := fn(ctx); err != nil {
		s.log.Printf("⚠️  remote %s failed, keeping local state only: %v", op, err)
		s.realtime.Set(false)
		return
	}
	s.realtime.Set(true)
}

func (s *PostStore) Get(id string) (model.Post, bool) {
	for _, p := range s.cell.Get() {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}

// All returns the feed newest first.
func (s *PostStore) All() []model.Post {
	return s.sorted.Get()
}

// ByTag filters the feed to posts carrying the tag. The tag may be
// passed with or without its '#'.
func (s *PostStore) ByTag(tag string) []model.Post {
	tag = strings.ToLower(strings.TrimPrefix(tag, "#"))
	var result []model.Post
	for _, p := range s.sorted.Get() {
		for _, t := range p.Tags {
			if t == tag {
				result = append(result, p)
				break
			}
		}
	}
	return result
}

// Hashtags returns tag counts across all posts, most used first.
func (s *PostStore) Hashtags() []views.TagCount {
	return s.hashtags.Get()
}

// RealtimeAvailable reports whether the last remote operation succeeded.
func (s *PostStore) RealtimeAvailable() bool {
	return s.realtime.Get()
}
