package db

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/kv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.StorageEntry{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewFromConn(conn, DialectSQLite)
}

func TestKVStoreUpsertAndGet(t *testing.T) {
	client := newTestClient(t)
	store := NewKVStore(client)
	ctx := context.Background()

	if _, err := store.Get(ctx, "currentUser"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected kv.ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "login", "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "login", "false"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := store.Get(ctx, "login")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "false" {
		t.Fatalf("expected upserted value false, got %q", got)
	}

	var count int64
	if err := client.DB().Model(&models.StorageEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected upsert to keep a single row, got %d", count)
	}
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if err := NewKVStore(client).Ping(context.Background()); err != nil {
		t.Fatalf("unexpected store ping error: %v", err)
	}
	if client.Dialect() != DialectSQLite {
		t.Fatalf("unexpected dialect %q", client.Dialect())
	}
}

func TestDialectorFor(t *testing.T) {
	if _, _, err := dialectorFor(config.StorageConfig{Backend: config.StorageBackendRedis}, config.DBConfig{}); err == nil {
		t.Fatalf("redis backend must not resolve a sql dialector")
	}
	if _, _, err := dialectorFor(config.StorageConfig{Backend: config.StorageBackendPostgres}, config.DBConfig{}); err == nil {
		t.Fatalf("postgres without DSN should fail")
	}
	_, dialect, err := dialectorFor(config.StorageConfig{Backend: config.StorageBackendSQLite, SQLitePath: "test.db"}, config.DBConfig{})
	if err != nil {
		t.Fatalf("unexpected sqlite error: %v", err)
	}
	if dialect != DialectSQLite {
		t.Fatalf("unexpected dialect %q", dialect)
	}
}

func TestNewOpensSQLiteFile(t *testing.T) {
	path := t.TempDir() + "/storefront.db"
	client, err := New(context.Background(), config.StorageConfig{Backend: config.StorageBackendSQLite, SQLitePath: path}, config.DBConfig{}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
