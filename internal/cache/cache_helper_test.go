package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "test:"), mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	want := payload{Name: "plumbing", Count: 3}
	if err := helper.Set(ctx, "k", want, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got payload
	if err := helper.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got payload
	err := helper.Get(context.Background(), "absent", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "k", payload{Name: "x"}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := helper.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var got payload
	if err := helper.Get(ctx, "k", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("error after delete = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	load := func() (interface{}, error) {
		calls++
		return payload{Name: "loaded", Count: calls}, nil
	}

	var first payload
	if err := helper.CacheOrExecute(ctx, "k", &first, time.Minute, load); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	var second payload
	if err := helper.CacheOrExecute(ctx, "k", &second, time.Minute, load); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("loader ran %d times, want 1", calls)
	}
	if first != second {
		t.Errorf("cached value %+v differs from loaded %+v", second, first)
	}
}

func TestCacheHelper_CacheOrExecuteLoaderError(t *testing.T) {
	helper, _ := newTestHelper(t)

	wantErr := errors.New("boom")
	var got payload
	err := helper.CacheOrExecute(context.Background(), "k", &got, time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "test:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", payload{}, time.Minute); err != nil {
		t.Errorf("set with nil client = %v, want nil", err)
	}
	if err := helper.Delete(ctx, "k"); err != nil {
		t.Errorf("delete with nil client = %v, want nil", err)
	}

	var got payload
	if err := helper.Get(ctx, "k", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("get with nil client = %v, want ErrCacheNotAvailable", err)
	}

	// Reads still work, straight through to the loader.
	calls := 0
	if err := helper.CacheOrExecute(ctx, "k", &got, time.Minute, func() (interface{}, error) {
		calls++
		return payload{Name: "direct"}, nil
	}); err != nil {
		t.Fatalf("cacheOrExecute with nil client failed: %v", err)
	}
	if calls != 1 || got.Name != "direct" {
		t.Errorf("loader calls = %d, got = %+v", calls, got)
	}
}

func TestCacheHelper_TTLExpiry(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "k", payload{Name: "x"}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	var got payload
	if err := helper.Get(ctx, "k", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("error after expiry = %v, want ErrCacheNotFound", err)
	}
}
