package lock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrBusy means another request holds a lock on one of the resources.
var ErrBusy = errors.New("lock: resource busy")

const (
	defaultTTL   = 5 * time.Second
	retries      = 3
	retryBackoff = 50 * time.Millisecond
)

// releaseScript deletes a key only when the stored token is ours, so an
// expired lock reacquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker serializes booking attempts per resource ahead of the database
// transaction, keeping lock contention out of postgres under bursts.
type Locker struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb, ttl: defaultTTL}
}

// DentistKey and RoomKey name the per-resource lock keys.
func DentistKey(id uint) string { return fmt.Sprintf("sched:dentist:%d", id) }
func RoomKey(id uint) string    { return fmt.Sprintf("sched:room:%d", id) }

// AcquireAll takes every key or none. Keys are locked in sorted order so two
// requests touching the same pair cannot deadlock each other's retries.
func (l *Locker) AcquireAll(ctx context.Context, keys ...string) (func(), error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	token := uuid.NewString()
	held := make([]string, 0, len(sorted))

	release := func() {
		for _, key := range held {
			releaseScript.Run(context.Background(), l.rdb, []string{key}, token)
		}
	}

	for _, key := range sorted {
		ok, err := l.acquire(ctx, key, token)
		if err != nil {
			release()
			return nil, err
		}
		if !ok {
			release()
			return nil, ErrBusy
		}
		held = append(held, key)
	}

	return release, nil
}

func (l *Locker) acquire(ctx context.Context, key, token string) (bool, error) {
	for attempt := 0; attempt < retries; attempt++ {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
	return false, nil
}
