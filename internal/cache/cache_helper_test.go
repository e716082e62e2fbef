package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

type pool struct {
	IDs []uint `json:"ids"`
}

func TestCacheHelper_GetSet(t *testing.T) {
	mr, client := newTestClient(t)
	helper := NewCacheHelper(client, "test:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", pool{IDs: []uint{1, 2}}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("test:k") {
		t.Fatalf("expected prefixed key to be written")
	}

	var got pool
	if err := helper.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.IDs) != 2 || got.IDs[0] != 1 || got.IDs[1] != 2 {
		t.Errorf("Get returned %+v", got)
	}

	if err := helper.Get(ctx, "missing", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected ErrCacheNotFound, got %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if err := helper.Get(ctx, "k", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
}

func TestCacheHelper_NilClient(t *testing.T) {
	helper := NewCacheHelper(nil, "test:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Errorf("Set without client should be a no-op, got %v", err)
	}
	var v int
	if err := helper.Get(ctx, "k", &v); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
	if helper.Available() {
		t.Errorf("helper without client reports available")
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	mr, client := newTestClient(t)
	helper := NewCacheHelper(client, "test:")
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return pool{IDs: []uint{7}}, nil
	}

	var first pool
	if err := helper.CacheOrExecute(ctx, "p", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute: %v", err)
	}
	if calls != 1 || len(first.IDs) != 1 || first.IDs[0] != 7 {
		t.Fatalf("unexpected first result %+v after %d calls", first, calls)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !mr.Exists("test:p") {
		if time.Now().After(deadline) {
			t.Fatalf("value was never written back")
		}
		time.Sleep(10 * time.Millisecond)
	}

	var second pool
	if err := helper.CacheOrExecute(ctx, "p", &second, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected cached hit, fetch called %d times", calls)
	}

	sentinel := errors.New("boom")
	err := helper.CacheOrExecute(ctx, "q", &second, time.Minute, func() (interface{}, error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}
}

func TestCacheManager_HealthCheck(t *testing.T) {
	_, client := newTestClient(t)
	if err := NewCacheManager(client).HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}
	if err := NewCacheManager(nil).HealthCheck(context.Background()); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
}
