// Package cache holds the redis-backed coordination used by the ledger
// services. Balances are never cached; redis only serializes batch accrual.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/lending-ledger/internal/ledger"
)

// ErrLockHeld is returned when another holder owns the lock.
var ErrLockHeld = errors.New("lock held by another holder")

// ReleaseFunc gives up a lock acquired by Acquire.
type ReleaseFunc func(ctx context.Context) error

// AccrualLock guards the batch accrual of one (company, kind) pair.
type AccrualLock interface {
	Acquire(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) (ReleaseFunc, error)
}

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLock struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisLock(client redis.UniversalClient, ttl time.Duration) AccrualLock {
	return &redisLock{client: client, ttl: ttl}
}

func LockKey(companyID uuid.UUID, kind ledger.Kind) string {
	return fmt.Sprintf("ledger:accrual:%s:%s", companyID, kind)
}

func (l *redisLock) Acquire(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) (ReleaseFunc, error) {
	key := LockKey(companyID, kind)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("release %s: %w", key, err)
		}
		return nil
	}, nil
}

type noopLock struct{}

// NewNoopLock returns a lock that always succeeds, for single-process
// deployments without redis.
func NewNoopLock() AccrualLock {
	return noopLock{}
}

func (noopLock) Acquire(context.Context, uuid.UUID, ledger.Kind) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
