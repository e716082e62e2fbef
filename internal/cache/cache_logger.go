package cache

import (
	"context"
	"log/slog"
)

// SafeSet stores a value and only logs on failure
func SafeSet(ctx context.Context, helper *CacheHelper, key string, value interface{}, cfg CacheConfig) {
	if err := helper.Set(ctx, key, value, cfg.TTL); err != nil {
		slog.WarnContext(ctx, "Failed to write cache entry",
			"error", err,
			"key", key)
	}
}
