package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gholaman/municipal-portal/internal/config"
	"github.com/gholaman/municipal-portal/internal/domain"
)

const statsCacheKey = "portal:request_stats"

// Redis wraps the go-redis client.
type Redis struct {
	Client   *redis.Client
	statsTTL time.Duration
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, statsTTL: cfg.StatsTTL}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// GetRequestStats returns cached dashboard stats, or false on miss.
func (r *Redis) GetRequestStats(ctx context.Context) (domain.RequestStats, bool) {
	if r == nil || r.Client == nil {
		return domain.RequestStats{}, false
	}
	raw, err := r.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return domain.RequestStats{}, false
	}
	var stats domain.RequestStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return domain.RequestStats{}, false
	}
	return stats, true
}

// SetRequestStats caches dashboard stats for the configured TTL.
// Cache failures are ignored: the store remains the source of truth.
func (r *Redis) SetRequestStats(ctx context.Context, stats domain.RequestStats) {
	if r == nil || r.Client == nil || r.statsTTL <= 0 {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	_ = r.Client.Set(ctx, statsCacheKey, raw, r.statsTTL).Err()
}

// InvalidateRequestStats drops the cached stats after a mutation.
func (r *Redis) InvalidateRequestStats(ctx context.Context) {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Del(ctx, statsCacheKey).Err()
}
