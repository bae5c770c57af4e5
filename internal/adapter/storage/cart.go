// Package storage holds the durable cart slot adapter.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/redis/go-redis/v9"
)

// CartStorageKey is the fixed namespace of the durable cart slot.
const CartStorageKey = "cart-storage"

const saveAttempts = 3

var _ port.CartRepository = (*RedisCartRepository)(nil)

type redisCmd interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisCartRepository persists the serialized line list under a single
// key. The slot has no expiration, the cart survives restarts.
type RedisCartRepository struct {
	rdb redisCmd
	key string
}

func NewRedisCartRepository(
	ctx context.Context, addr string,
) (RedisCartRepository, error) {
	const op = "NewRedisCartRepository"
	log := slog.With("op", op)

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	r := RedisCartRepository{rdb: rdb, key: CartStorageKey}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return RedisCartRepository{}, fmt.Errorf(
			"%s: cart storage unavailable: %w", op, err,
		)
	}

	log.Info("cart storage is available")
	return r, nil
}

func (r RedisCartRepository) Close() {
	const op = "RedisCartRepository.Close"
	log := slog.With("op", op)

	log.Info("closing cart storage...")
	if err := r.rdb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("cart storage is closed")
}

// LoadCart reads the prior state. An absent key yields an empty cart.
func (r RedisCartRepository) LoadCart(
	ctx context.Context,
) ([]domain.CartLine, error) {
	const op = "RedisCartRepository.LoadCart"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lines, err := decodeCart(b)
	if err != nil {
		return nil, fmt.Errorf("%s: corrupt cart state: %w", op, err)
	}
	return lines, nil
}

// SaveCart overwrites the slot with the full line list. Transient
// failures are retried a few times before giving up.
func (r RedisCartRepository) SaveCart(
	ctx context.Context, lines []domain.CartLine,
) error {
	const op = "RedisCartRepository.SaveCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b, err := encodeCart(lines)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.RetryConfig{MaxAttempts: saveAttempts}
	err = retry.Do(ctx, retryCfg, func() error {
		return r.rdb.Set(ctx, r.key, b, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
