// Package localstore keeps device-local inbox state in a SQLite file.
package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"cabinet/internal/shared/logger"
)

const (
	lastViewedPrefix = "chat-last-viewed-"
	selectedPrefix   = "chat-selected-conversation-"
)

// entryModel is a plain string key/value row.
type entryModel struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (entryModel) TableName() string {
	return "kv_entries"
}

// LastViewedKey is the storage key of a conversation's read marker.
func LastViewedKey(cabinetID, conversationID string) string {
	return lastViewedPrefix + cabinetID + "-" + conversationID
}

// SelectedConversationKey is the storage key of the last opened conversation.
func SelectedConversationKey(cabinetID string) string {
	return selectedPrefix + cabinetID
}

// MarkerStore persists read markers and the selected conversation. Missing
// or unreadable entries read as absent.
type MarkerStore struct {
	db     *gorm.DB
	logger logger.Interface
}

// Open creates the store file and its parent directory if needed.
func Open(path string, log logger.Interface) (*MarkerStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return NewMarkerStore(db, log)
}

func NewMarkerStore(db *gorm.DB, log logger.Interface) (*MarkerStore, error) {
	if err := db.AutoMigrate(&entryModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}
	return &MarkerStore{db: db, logger: log}, nil
}

func (s *MarkerStore) get(ctx context.Context, key string) (string, bool) {
	var rows []entryModel
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Limit(1).Find(&rows).Error; err != nil {
		s.logger.Warnw("failed to read local store", "key", key, "error", err)
		return "", false
	}
	if len(rows) == 0 {
		return "", false
	}
	return rows[0].Value, true
}

func (s *MarkerStore) set(ctx context.Context, key, value string) error {
	entry := entryModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write local store: %w", err)
	}
	return nil
}

// LastViewed returns the read marker of a conversation.
func (s *MarkerStore) LastViewed(ctx context.Context, cabinetID, conversationID string) (time.Time, bool) {
	raw, ok := s.get(ctx, LastViewedKey(cabinetID, conversationID))
	if !ok {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		s.logger.Debugw("ignoring unreadable read marker", "cabinet_id", cabinetID, "conversation", conversationID)
		return time.Time{}, false
	}
	return at.UTC(), true
}

func (s *MarkerStore) SetLastViewed(ctx context.Context, cabinetID, conversationID string, at time.Time) error {
	return s.set(ctx, LastViewedKey(cabinetID, conversationID), at.UTC().Format(time.RFC3339Nano))
}

// SelectedConversation returns the conversation last opened in the cabinet.
func (s *MarkerStore) SelectedConversation(ctx context.Context, cabinetID string) (string, bool) {
	raw, ok := s.get(ctx, SelectedConversationKey(cabinetID))
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

func (s *MarkerStore) SetSelectedConversation(ctx context.Context, cabinetID, conversationID string) error {
	return s.set(ctx, SelectedConversationKey(cabinetID), conversationID)
}

func (s *MarkerStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
