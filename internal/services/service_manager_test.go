package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/hostel-service/internal/cache"
	"github.com/SAP-F-2025/hostel-service/internal/events"
	"github.com/SAP-F-2025/hostel-service/internal/repositories/memory"
	"github.com/SAP-F-2025/hostel-service/internal/validator"
)

func TestServiceManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sm := NewServiceManager(
		memory.NewMemoryRepository(),
		cache.NewCacheManager(client, time.Minute),
		events.NewMockEventPublisher(testLogger()),
		testLogger(),
		validator.New(),
	)

	if err := sm.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck() before Initialize should fail")
	}
	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if sm.Students() == nil || sm.Foods() == nil || sm.Users() == nil || sm.Export() == nil {
		t.Fatal("services not wired")
	}
	if err := sm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	mr.Close()
	if err := sm.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck() should fail when redis is down")
	}

	if err := sm.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := sm.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck() after Shutdown should fail")
	}
}

func TestServiceManager_WithoutCache(t *testing.T) {
	ctx := context.Background()
	sm := NewServiceManager(memory.NewMemoryRepository(), nil, nil, testLogger(), validator.New())

	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := sm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() without redis error = %v", err)
	}
}

func TestServiceManager_GetterPanicsBeforeInitialize(t *testing.T) {
	sm := NewServiceManager(memory.NewMemoryRepository(), nil, nil, testLogger(), validator.New())

	defer func() {
		if recover() == nil {
			t.Error("Students() should panic before Initialize")
		}
	}()
	sm.Students()
}
