package cache

import (
	"fmt"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// IdempotencyStoreFactory picks the idempotency store for the configuration
type IdempotencyStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	connectRedis          func(config.RedisConfig) (shared.IdempotencyStore, error)
}

// IdempotencyStoreFactoryOption is a functional option for configuring the factory
type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory store. Default is true.
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewIdempotencyStoreFactory creates a new factory
func NewIdempotencyStoreFactory(cfg config.RedisConfig, opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		connectRedis: func(cfg config.RedisConfig) (shared.IdempotencyStore, error) {
			return NewRedisIdempotencyStore(cfg)
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore returns the Redis store when Redis is enabled and reachable,
// otherwise the in-memory store (unless fallback is disabled)
func (f *IdempotencyStoreFactory) CreateStore() (shared.IdempotencyStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := f.connectRedis(f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis idempotency store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store. "+
		"Idempotency keys will not be shared between instances.",
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(), nil
}
