package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(10))
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got string
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "v" {
		t.Fatalf("got %q", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "k", "v", time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	var got string
	if err := mc.Get(ctx, "k", &got); err != ErrCacheMiss {
		t.Fatalf("expected miss, got %v", err)
	}
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "resp:a", "1", time.Minute)
	_ = mc.Set(ctx, "resp:b", "2", time.Minute)
	_ = mc.Set(ctx, "other", "3", time.Minute)

	if err := mc.DeleteByPattern(ctx, "resp:*"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var got string
	if err := mc.Get(ctx, "resp:a", &got); err != ErrCacheMiss {
		t.Fatalf("resp:a should be gone, got %v", err)
	}
	if err := mc.Get(ctx, "other", &got); err != nil || got != "3" {
		t.Fatalf("other should survive: %v %q", err, got)
	}
}
