package store

import (
	"context"
	"errors"
	"log"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/state"
	"github.com/sebaxchen/lookSocial/internal/storage"
)

// PrefsStore owns view preferences. The home feed defaults to hidden
// until a preference is stored.
type PrefsStore struct {
	cell *state.Cell[model.ViewPreferences]
}

func NewPrefsStore(ctx context.Context, cache KeyValue, logger *log.Logger) *PrefsStore {
	logger = ensureLogger(logger)

	var prefs model.ViewPreferences
	if cache != nil {
		if err := cache.Load(ctx, storage.KeyPreferences, &prefs); err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Printf("⚠️  failed to load cached preferences: %v", err)
		}
	}

	cell := state.NewCell(prefs)
	cell.Subscribe(saver[model.ViewPreferences](cache, storage.KeyPreferences, logger))
	return &PrefsStore{cell: cell}
}

func (s *PrefsStore) Get() model.ViewPreferences {
	return s.cell.Get()
}

func (s *PrefsStore) SetHomeVisible(visible bool) model.ViewPreferences {
	s.cell.Update(func(p model.ViewPreferences) model.ViewPreferences {
		p.HomeVisible = visible
		return p
	})
	return s.cell.Get()
}

func (s *PrefsStore) ToggleHomeVisible() model.ViewPreferences {
	s.cell.Update(func(p model.ViewPreferences) model.ViewPreferences {
		p.HomeVisible = !p.HomeVisible
		return p
	})
	return s.cell.Get()
}
