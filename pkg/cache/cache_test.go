package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "pypi:releases:flask", []byte(`{"1.0":[]}`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "pypi:releases:flask")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v; want hit", hit, err)
	}
	if string(data) != `{"1.0":[]}` {
		t.Errorf("Get data = %q", data)
	}

	_, hit, err = c.Get(ctx, "pypi:releases:django")
	if err != nil || hit {
		t.Errorf("Get(missing) = %v, %v; want miss, nil", hit, err)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry should hit")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCache_NoTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	_ = c.Set(ctx, "k", []byte("v"), 0)

	now = now.AddDate(10, 0, 0)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry without TTL should never expire")
	}
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(ctx, "k")
	if err != nil || hit {
		t.Errorf("Get(corrupt) = %v, %v; want miss, nil", hit, err)
	}
}

func TestFileCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear, want 0", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestFileCache_PathSharding(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	p1 := c.path("test")
	if p1 != c.path("test") {
		t.Error("path should be deterministic")
	}
	if p1 == c.path("other") {
		t.Error("different keys should produce different paths")
	}
	shard := filepath.Base(filepath.Dir(p1))
	if len(shard) != 2 {
		t.Errorf("shard dir %q should be 2 characters", shard)
	}
}

func TestKey(t *testing.T) {
	if got := Key("pypi", "releases", "flask"); got != "pypi:releases:flask" {
		t.Errorf("Key() = %q", got)
	}
	if got := Key("pypi"); got != "pypi:" {
		t.Errorf("Key(no parts) = %q", got)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}
