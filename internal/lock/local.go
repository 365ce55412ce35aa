// Package lock serializes work per conversation so that two requests for the
// same conversation never interleave their context reads and writes.
package lock

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrEmptyKey is returned when a lock key is blank.
	ErrEmptyKey = errors.New("lock: key must not be empty")
	// ErrNilFn is returned when WithLock is called without work to run.
	ErrNilFn = errors.New("lock: function must not be nil")
)

// Local is an in-process keyed mutex. Entries are dropped once no caller
// holds or waits for them.
type Local struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewLocal creates an empty Local locker.
func NewLocal() *Local {
	return &Local{locks: make(map[string]*keyLock)}
}

// WithLock runs fn while holding the lock for key. Waiting stops early when
// ctx is done.
func (l *Local) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	if fn == nil {
		return ErrNilFn
	}

	kl := l.ref(key)
	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key)
		return ctx.Err()
	}
	defer func() {
		<-kl.ch
		l.unref(key)
	}()
	return fn(ctx)
}

func (l *Local) ref(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	return kl
}

func (l *Local) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl, ok := l.locks[key]
	if !ok {
		return
	}
	kl.refs--
	if kl.refs <= 0 {
		delete(l.locks, key)
	}
}

func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
