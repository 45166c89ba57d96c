package cache

import (
	"context"
	"log/slog"
)

// RoleKey is the cache key of the role flags for email
func RoleKey(email string) string {
	return "email:" + email
}

// SafeInvalidate invalidates a cache key, logging instead of failing
func SafeInvalidate(ctx context.Context, helper *CacheHelper, key string) {
	if err := helper.Invalidate(ctx, key); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache key",
			"error", err,
			"key", key)
	}
}

// InvalidateRoleCache drops cached role flags after a write to the users collection
func InvalidateRoleCache(ctx context.Context, cm *CacheManager, email string) {
	SafeInvalidate(ctx, cm.Roles, RoleKey(email))
}
