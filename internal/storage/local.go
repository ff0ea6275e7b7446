// Package storage holds the persistence adapters: a sqlite-backed local
// cache that keeps JSON snapshots of whole collections, and a mongo
// remote for the collections that are shared between installations.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("cache entry not found")

// Cache keys, one per persisted collection.
const (
	KeyTasks       = "tasks"
	KeyGroups      = "groups"
	KeyTeamMembers = "teamMembers"
	KeySharedFiles = "sharedFiles"
	KeyPreferences = "homeVisibility"
	KeyUsers       = "users"
)

// CacheEntry is one key-value row: the value is the JSON-serialized
// collection, date fields encoded as RFC 3339 strings.
type CacheEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (CacheEntry) TableName() string { return "cache_entries" }

type Local struct {
	db *gorm.DB
}

// NewLocal wraps an already-open gorm DB and ensures the cache table
// exists. Tests inject a mock connection here.
func NewLocal(db *gorm.DB) (*Local, error) {
	if err := db.AutoMigrate(&CacheEntry{}); err != nil {
		return nil, fmt.Errorf("migrate cache table: %w", err)
	}
	return &Local{db: db}, nil
}

// OpenLocal opens the sqlite cache file, creating parent directories as
// needed, and runs the migration.
func OpenLocal(path string) (*Local, error) {
	if path == "" {
		path = "noteto_cache.db"
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	return NewLocal(db)
}

// Save serializes v and upserts it under key.
func (l *Local) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	entry := CacheEntry{Key: key, Value: string(raw), UpdatedAt: time.Now()}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// Load deserializes the entry under key into dest. Returns ErrNotFound
// when the key has never been saved.
func (l *Local) Load(ctx context.Context, key string, dest any) error {
	var entry CacheEntry
	err := l.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry under key. Missing keys are not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	return l.db.WithContext(ctx).Delete(&CacheEntry{}, "key = ?", key).Error
}

func ensureDir(path string) error {
	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(path, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
