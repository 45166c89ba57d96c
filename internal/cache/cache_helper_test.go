package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type flags struct {
	Admin bool `json:"admin"`
}

func newTestManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheManager(client, time.Minute), mr
}

func TestCacheOrExecute(t *testing.T) {
	ctx := context.Background()
	cm, mr := newTestManager(t)

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return flags{Admin: true}, nil
	}

	var first flags
	if err := cm.Roles.CacheOrExecute(ctx, RoleKey("a@x"), &first, cm.RoleTTL(), fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if !first.Admin || calls != 1 {
		t.Fatalf("first = %+v, calls = %d", first, calls)
	}
	if !mr.Exists("roles:email:a@x") {
		t.Fatal("value was not written to redis")
	}
	if ttl := mr.TTL("roles:email:a@x"); ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", ttl)
	}

	var second flags
	if err := cm.Roles.CacheOrExecute(ctx, RoleKey("a@x"), &second, cm.RoleTTL(), fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if !second.Admin || calls != 1 {
		t.Errorf("cached read: second = %+v, calls = %d", second, calls)
	}

	InvalidateRoleCache(ctx, cm, "a@x")
	if mr.Exists("roles:email:a@x") {
		t.Error("key survived invalidation")
	}
}

func TestCacheOrExecute_FetchError(t *testing.T) {
	cm, _ := newTestManager(t)
	boom := errors.New("boom")

	var dest flags
	err := cm.Roles.CacheOrExecute(context.Background(), "k", &dest, time.Minute, func() (interface{}, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped boom", err)
	}
}

func TestCacheHelper_Disabled(t *testing.T) {
	ctx := context.Background()
	cm := NewCacheManager(nil, 0)

	if cm.Roles.Enabled() {
		t.Fatal("nil client must disable the cache")
	}
	if cm.RoleTTL() != RoleCacheConfig.TTL {
		t.Errorf("default ttl = %v", cm.RoleTTL())
	}
	var dest flags
	if err := cm.Roles.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() error = %v", err)
	}
	if err := cm.Roles.Invalidate(ctx, "k"); err != nil {
		t.Errorf("Invalidate() error = %v", err)
	}
	if err := cm.HealthCheck(ctx); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("HealthCheck() error = %v", err)
	}

	calls := 0
	err := cm.Roles.CacheOrExecute(ctx, "k", &dest, time.Minute, func() (interface{}, error) {
		calls++
		return flags{Admin: true}, nil
	})
	if err != nil || !dest.Admin || calls != 1 {
		t.Errorf("CacheOrExecute() = %+v, %v, calls %d", dest, err, calls)
	}
}

func TestCacheOrExecute_InvalidatedDuringFetch(t *testing.T) {
	ctx := context.Background()
	cm, mr := newTestManager(t)
	key := RoleKey("a@x")

	calls := 0
	var got flags
	err := cm.Roles.CacheOrExecute(ctx, key, &got, cm.RoleTTL(), func() (interface{}, error) {
		calls++
		// a role write lands after the read but before the result is cached
		InvalidateRoleCache(ctx, cm, "a@x")
		return flags{Admin: true}, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if !got.Admin {
		t.Errorf("got = %+v, want the fetched value", got)
	}
	if mr.Exists("roles:email:a@x") {
		t.Fatal("stale fetch result was cached after invalidation")
	}

	var again flags
	if err := cm.Roles.CacheOrExecute(ctx, key, &again, cm.RoleTTL(), func() (interface{}, error) {
		calls++
		return flags{}, nil
	}); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if again.Admin || calls != 2 {
		t.Errorf("again = %+v, calls = %d", again, calls)
	}
	if !mr.Exists("roles:email:a@x") {
		t.Error("fresh fetch result was not cached")
	}
}

func TestCacheHelper_Invalidate(t *testing.T) {
	ctx := context.Background()
	cm, mr := newTestManager(t)

	var dest flags
	if err := cm.Roles.CacheOrExecute(ctx, "k", &dest, time.Minute, func() (interface{}, error) {
		return flags{Admin: true}, nil
	}); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}

	for want := 1; want <= 2; want++ {
		if err := cm.Roles.Invalidate(ctx, "k"); err != nil {
			t.Fatalf("Invalidate() error = %v", err)
		}
		if mr.Exists("roles:k") {
			t.Error("key survived Invalidate")
		}
		v, err := mr.Get("roles:k:v")
		if err != nil || v != strconv.Itoa(want) {
			t.Errorf("version = %q, %v, want %d", v, err, want)
		}
		if ttl := mr.TTL("roles:k:v"); ttl != versionTTL {
			t.Errorf("version ttl = %v, want %v", ttl, versionTTL)
		}
	}
}
