package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDiskCacheWrite(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root)
	key := "test-key"
	data := []byte("test data")

	err := cache.Write(key, data)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Verify file exists
	cachePath := cache.buildPath(key)
	absPath, _ := filepath.Abs(cachePath)
	if _, err := os.Stat(absPath); err != nil {
		t.Errorf("Cache file not found: %v", err)
	}
}

func TestDiskCacheFind_Hit(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root)
	key := "test-key"
	data := []byte("test data")

	cache.Write(key, data)

	found, err := cache.Find(key)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if string(found) != string(data) {
		t.Errorf("Expected %s, got %s", string(data), string(found))
	}
}

func TestDiskCacheFind_Miss(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root)
	key := "nonexistent-key"

	found, err := cache.Find(key)
	if err != nil {
		t.Fatalf("Find should not error on miss: %v", err)
	}

	if found != nil {
		t.Errorf("Expected nil for cache miss, got %v", found)
	}
}

func TestDiskCacheFind_Expired(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root, WithTTL(10*time.Millisecond))
	key := "expiring-key"
	data := []byte("test data")

	cache.Write(key, data)

	// Backdate the file past the TTL
	cachePath, _ := filepath.Abs(cache.buildPath(key))
	past := time.Now().Add(-time.Minute)
	if err := os.Chtimes(cachePath, past, past); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	found, err := cache.Find(key)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found != nil {
		t.Errorf("Expected nil for expired item, got %v", found)
	}

	// The expired file should have been removed
	if _, err := os.Stat(cachePath); !os.IsNotExist(err) {
		t.Errorf("Expected expired cache file to be removed, stat err = %v", err)
	}
}

func TestDiskCacheDelete(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root)
	key := "test-key"
	data := []byte("test data")

	cache.Write(key, data)

	err := cache.Delete(key)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	found, err := cache.Find(key)
	if err != nil {
		t.Fatalf("Find after delete failed: %v", err)
	}

	if found != nil {
		t.Errorf("Expected nil after delete, got %v", found)
	}
}

func TestDiskCacheDeleteNonexistent(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root)

	err := cache.Delete("nonexistent-key")
	if err == nil {
		t.Errorf("Expected error when deleting nonexistent key")
	}
}

func TestDiskCacheBuildPath_Sharding(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root)
	key := "test-key"

	path := cache.buildPath(key)
	md5 := MD5(key)

	// Verify sharding structure
	expected := filepath.Join(root, md5[:2], md5)
	if path != expected {
		t.Errorf("Expected path %s, got %s", expected, path)
	}
}

func TestDiskCacheOverwrite(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root)
	key := "test-key"
	data1 := []byte("original data")
	data2 := []byte("new data")

	cache.Write(key, data1)
	cache.Write(key, data2)

	found, err := cache.Find(key)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if string(found) != string(data2) {
		t.Errorf("Expected %s, got %s", string(data2), string(found))
	}
}

func TestDiskCachePrune(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root, WithMaxSize(25))

	// Write three 10-byte items with staggered mtimes, oldest first.
	keys := []string{"oldest", "middle", "newest"}
	for i, key := range keys {
		if err := cache.Write(key, []byte("0123456789")); err != nil {
			t.Fatalf("Write failed for %s: %v", key, err)
		}
		mtime := time.Now().Add(time.Duration(i-len(keys)) * time.Hour)
		path, _ := filepath.Abs(cache.buildPath(key))
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("Chtimes failed: %v", err)
		}
	}

	if err := cache.Prune(); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	// 30 bytes > 25-byte limit, so the single oldest item should be gone.
	if found, _ := cache.Find("oldest"); found != nil {
		t.Errorf("Expected oldest item to be pruned")
	}
	for _, key := range []string{"middle", "newest"} {
		if found, _ := cache.Find(key); found == nil {
			t.Errorf("Expected %s to survive pruning", key)
		}
	}
}

func TestDiskCachePruneUnderLimit(t *testing.T) {
	root := t.TempDir()
	cache := NewDiskCache(root, WithMaxSize(1024))

	cache.Write("key", []byte("small"))

	if err := cache.Prune(); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	if found, _ := cache.Find("key"); found == nil {
		t.Errorf("Expected item under the size limit to survive pruning")
	}
}
