package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "lock:"

// Options tunes the distributed lock.
type Options struct {
	// Expiry bounds how long a crashed holder can block the key.
	Expiry time.Duration
	// Tries is the number of acquisition attempts before giving up.
	Tries int
	// RetryDelay is the wait between attempts.
	RetryDelay time.Duration
}

// DefaultOptions suits a single webhook turn, which completes well within a
// few seconds.
func DefaultOptions() Options {
	return Options{
		Expiry:     10 * time.Second,
		Tries:      20,
		RetryDelay: 100 * time.Millisecond,
	}
}

// Redis serializes work per key across processes using the RedLock algorithm.
type Redis struct {
	rs     *redsync.Redsync
	opts   Options
	logger *zap.Logger
}

// NewRedis creates a Redis locker on top of an existing client.
func NewRedis(client goredislib.UniversalClient, opts Options, logger *zap.Logger) (*Redis, error) {
	if client == nil {
		return nil, errors.New("lock: redis client must not be nil")
	}
	if opts.Expiry <= 0 {
		return nil, errors.New("lock: expiry must be greater than 0")
	}
	if opts.Tries < 1 {
		return nil, errors.New("lock: tries must be at least 1")
	}
	if opts.RetryDelay < 0 {
		return nil, errors.New("lock: retry delay must not be negative")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		rs:     redsync.New(goredis.NewPool(client)),
		opts:   opts,
		logger: logger,
	}, nil
}

// WithLock runs fn while holding the distributed lock for key.
func (r *Redis) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	if fn == nil {
		return ErrNilFn
	}

	m := r.rs.NewMutex(keyPrefix+key,
		redsync.WithExpiry(r.opts.Expiry),
		redsync.WithTries(r.opts.Tries),
		redsync.WithRetryDelay(r.opts.RetryDelay),
	)
	if err := m.LockContext(ctx); err != nil {
		return fmt.Errorf("lock: acquire %s: %w", key, err)
	}
	defer func() {
		if ok, err := m.UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
			r.logger.Warn("failed to release lock", zap.String("key", key), zap.Bool("unlock_ok", ok), zap.Error(err))
		}
	}()
	return fn(ctx)
}
