package db

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/kv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore persists storage entries in the storage_entries table.
type KVStore struct {
	client *Client
	db     *gorm.DB
}

var (
	_ kv.Store  = (*KVStore)(nil)
	_ kv.Pinger = (*KVStore)(nil)
)

// NewKVStore binds a kv.Store to the provided client.
func NewKVStore(client *Client) *KVStore {
	return &KVStore{client: client, db: client.DB()}
}

// Ping checks the underlying connection.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Get loads the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var entry models.StorageEntry
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Take(&entry).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", kv.ErrNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

// Set upserts the value stored under key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	entry := models.StorageEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).
		Error
}
