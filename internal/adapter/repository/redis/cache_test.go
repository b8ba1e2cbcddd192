package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	"github.com/iho/gobalance/internal/usecase"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	return NewCache(redislib.NewClient(&redislib.Options{Addr: mr.Addr()})), mr
}

func TestCacheSetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "balance:2024-01-01:test", []byte(`{"x":1}`), time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(ctx, "balance:2024-01-01:test")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `{"x":1}` {
		t.Errorf("expected stored value, got %q", got)
	}
}

func TestCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "balance:2099-01-01:test")
	if !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheTTL(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
}

func TestCacheDelete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestCacheDeleteMatching(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	keys := []string{
		"balance:2024-01-01:dev",
		"balance:2024-01-01:prod",
		"report:2024-01-01:2024-01-31:dev",
		"report:2024-02-01:2024-02-28:prod",
	}
	for _, k := range keys {
		if err := cache.Set(ctx, k, []byte("v"), time.Hour); err != nil {
			t.Fatalf("set %s failed: %v", k, err)
		}
	}

	if err := cache.DeleteMatching(ctx, "report:*"); err != nil {
		t.Fatalf("delete matching failed: %v", err)
	}

	for _, k := range keys[:2] {
		if _, err := cache.Get(ctx, k); err != nil {
			t.Errorf("balance key %s should survive report invalidation: %v", k, err)
		}
	}
	for _, k := range keys[2:] {
		if _, err := cache.Get(ctx, k); !errors.Is(err, usecase.ErrCacheMiss) {
			t.Errorf("report key %s should be gone, got %v", k, err)
		}
	}
}

func TestCacheDeleteMatchingSingleDay(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "balance:2024-01-01:dev", []byte("a"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := cache.Set(ctx, "balance:2024-01-02:dev", []byte("b"), time.Hour); err != nil {
		t.Fatal(err)
	}

	if err := cache.DeleteMatching(ctx, "balance:2024-01-01:*"); err != nil {
		t.Fatalf("delete matching failed: %v", err)
	}

	if _, err := cache.Get(ctx, "balance:2024-01-01:dev"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Errorf("expected day key invalidated, got %v", err)
	}
	if _, err := cache.Get(ctx, "balance:2024-01-02:dev"); err != nil {
		t.Errorf("neighbouring day must survive: %v", err)
	}
}
