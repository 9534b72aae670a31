package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, prefix string) (*miniredis.Miniredis, *Redis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedis(client, prefix)
}

func TestRedisPrefixedKeys(t *testing.T) {
	mr, store := newTestStore(t, "gg")
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("gg:k") {
		t.Fatalf("expected prefixed key, have %v", mr.Keys())
	}

	got, err := store.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := store.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Del: %v", err)
	}
}

func TestRedisNoPrefix(t *testing.T) {
	mr, store := newTestStore(t, "")
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"), 0)
	if !mr.Exists("k") {
		t.Fatalf("expected bare key, have %v", mr.Keys())
	}
}

func TestRedisTTL(t *testing.T) {
	mr, store := newTestStore(t, "gg")
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mr.FastForward(time.Minute + time.Second)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after TTL: %v", err)
	}
}

func TestRedisUnavailable(t *testing.T) {
	mr, store := newTestStore(t, "gg")
	mr.Close()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Set on closed backend: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Get on closed backend: %v", err)
	}
}
