package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
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

	return &Redis{Client: client}
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

// AllowOnce reports whether key has been seen within the window. The first
// caller inside a window wins; later calls are rejected until the key expires.
func (r *Redis) AllowOnce(ctx context.Context, key string, window time.Duration) (bool, error) {
	if r == nil || r.Client == nil {
		return false, errors.New("redis client not configured")
	}
	return r.Client.SetNX(ctx, key, 1, window).Result()
}

// OTPRequestLimiter throttles one-time passcode requests per username.
type OTPRequestLimiter struct {
	redis  *Redis
	window time.Duration
}

// NewOTPRequestLimiter builds a limiter; a non-positive window disables it.
func NewOTPRequestLimiter(redis *Redis, window time.Duration) *OTPRequestLimiter {
	return &OTPRequestLimiter{redis: redis, window: window}
}

// Allow reports whether a passcode request for username may proceed.
func (l *OTPRequestLimiter) Allow(ctx context.Context, username string) (bool, error) {
	if l.window <= 0 {
		return true, nil
	}
	return l.redis.AllowOnce(ctx, "otp:req:"+username, l.window)
}
