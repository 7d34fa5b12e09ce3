package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	c, err := NewRedisCache(ctx, "redis://"+mr.Addr(), "pypin:")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = %v, %v; want miss, nil", hit, err)
	}

	if err := c.Set(ctx, "pypi:releases:flask", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("pypin:pypi:releases:flask") {
		t.Error("key should be stored under prefix")
	}

	data, hit, err := c.Get(ctx, "pypi:releases:flask")
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, %v, %v; want payload, true, nil", data, hit, err)
	}

	mr.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "pypi:releases:flask"); hit {
		t.Error("entry should expire after TTL")
	}

	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}
}

func TestRedisCache_Clear(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	c, err := NewRedisCache(ctx, "redis://"+mr.Addr(), "pypin:")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = mr.Set("other:key", "kept")

	n, err := c.Clear(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Clear = %d, %v; want 2, nil", n, err)
	}
	if !mr.Exists("other:key") {
		t.Error("keys outside the prefix must survive Clear")
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url", ""); err == nil {
		t.Error("NewRedisCache should fail on invalid url")
	}
}
