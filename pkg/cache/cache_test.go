package cache

import (
	"context"
	"testing"
	"time"
)

func TestGoCache(t *testing.T) {
	config := LocalConfig{
		DefaultExpiration: 5 * time.Minute,
		CleanupInterval:   10 * time.Minute,
	}

	cache := NewGoCache(config)
	defer cache.Close()

	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		key := "test_key"
		value := "test_value"

		if err := cache.Set(ctx, key, value, time.Minute); err != nil {
			t.Errorf("Failed to set cache: %v", err)
		}

		if retrieved, exists := cache.Get(ctx, key); !exists {
			t.Error("Cache value not found")
		} else if retrieved != value {
			t.Errorf("Expected %v, got %v", value, retrieved)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		key := "delete_key"
		if err := cache.Set(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("Failed to set cache: %v", err)
		}
		if err := cache.Delete(ctx, key); err != nil {
			t.Errorf("Failed to delete cache: %v", err)
		}
		if cache.Exists(ctx, key) {
			t.Error("Key still exists after delete")
		}
	})
}

func TestLRUCache(t *testing.T) {
	cache, err := NewLRUCache(LocalConfig{MaxSize: 2, DefaultExpiration: time.Minute})
	if err != nil {
		t.Fatalf("Failed to create lru cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()

	cache.Set(ctx, "a", 1, 0)
	cache.Set(ctx, "b", 2, 0)
	cache.Set(ctx, "c", 3, 0)

	// 容量为2，最早的键应被淘汰
	if cache.Exists(ctx, "a") {
		t.Error("Oldest key should have been evicted")
	}
	if v, ok := cache.Get(ctx, "c"); !ok || v != 3 {
		t.Errorf("Expected 3, got %v", v)
	}
}
