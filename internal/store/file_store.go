package store

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/state"
	"github.com/sebaxchen/lookSocial/internal/storage"
)

// FileStore owns shared-file metadata. File bytes live elsewhere (data
// URIs or external URLs); only the metadata is stored and cached.
type FileStore struct {
	cell *state.Cell[[]model.SharedFile]
	log  *log.Logger
}

func NewFileStore(ctx context.Context, cache KeyValue, logger *log.Logger) *FileStore {
	logger = ensureLogger(logger)

	var files []model.SharedFile
	if cache != nil {
		if err := cache.Load(ctx, storage.KeySharedFiles, &files); err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Printf("⚠️  failed to load cached shared files: %v", err)
		}
	}

	cell := state.NewCell(files)
	cell.Subscribe(saver[[]model.SharedFile](cache, storage.KeySharedFiles, logger))
	return &FileStore{cell: cell, log: logger}
}

func (s *FileStore) Add(file model.SharedFile) (model.SharedFile, error) {
	if file.Name == "" {
		return model.SharedFile{}, ErrEmptyName
	}
	if file.ID == "" {
		file.ID = newID()
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	if file.SharedWithMembers == nil {
		file.SharedWithMembers = []string{}
	}
	if file.SharedWithGroups == nil {
		file.SharedWithGroups = []string{}
	}

	s.cell.Update(func(files []model.SharedFile) []model.SharedFile {
		return append(append([]model.SharedFile{}, files...), file)
	})
	return file, nil
}

func (s *FileStore) Delete(id string) {
	s.cell.Update(func(files []model.SharedFile) []model.SharedFile {
		next := make([]model.SharedFile, 0, len(files))
		for _, f := range files {
			if f.ID != id {
				next = append(next, f)
			}
		}
		return next
	})
}

func (s *FileStore) Get(id string) (model.SharedFile, bool) {
	for _, f := range s.cell.Get() {
		if f.ID == id {
			return f, true
		}
	}
	return model.SharedFile{}, false
}

func (s *FileStore) All() []model.SharedFile {
	return s.cell.Get()
}

// Share replaces the member and group share lists of a file.
func (s *FileStore) Share(id string, members, groups []string) (model.SharedFile, bool) {
	if members == nil {
		members = []string{}
	}
	if groups == nil {
		groups = []string{}
	}
	var updated model.SharedFile
	found := false
	s.cell.Update(func(files []model.SharedFile) []model.SharedFile {
		next := make([]model.SharedFile, len(files))
		copy(next, files)
		for i, f := range next {
			if f.ID != id {
				continue
			}
			f.SharedWithMembers = members
			f.SharedWithGroups = groups
			next[i] = f
			updated = f
			found = true
			break
		}
		return next
	})
	return updated, found
}
