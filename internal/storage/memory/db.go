package memory

import (
	"context"
	"sync"
	"time"

	"github.com/avstrong/homestay/internal/booking"
	"github.com/avstrong/homestay/internal/logger"
)

const defaultMaxEntries = 10000

type Config struct {
	L          *logger.Logger
	TTL        time.Duration
	MaxEntries int
	Now        func() time.Time
}

type entry struct {
	estimate  *booking.Estimate
	expiresAt time.Time
}

// DB keeps estimates in process memory until their TTL passes.
type DB struct {
	mu         sync.Mutex
	l          *logger.Logger
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	entries    map[string]entry
}

func New(conf Config) *DB {
	db := &DB{
		l:          conf.L,
		ttl:        conf.TTL,
		maxEntries: conf.MaxEntries,
		now:        conf.Now,
		entries:    make(map[string]entry),
	}

	if db.maxEntries <= 0 {
		db.maxEntries = defaultMaxEntries
	}

	if db.now == nil {
		db.now = time.Now
	}

	return db
}

func (db *DB) GetEstimate(_ context.Context, key string) (*booking.Estimate, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e, ok := db.entries[key]
	if !ok {
		return nil, booking.ErrCacheMiss
	}

	if !db.now().Before(e.expiresAt) {
		delete(db.entries, key)

		return nil, booking.ErrCacheMiss
	}

	return e.estimate, nil
}

func (db *DB) SaveEstimate(_ context.Context, key string, estimate *booking.Estimate) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.now()

	if len(db.entries) >= db.maxEntries {
		db.purgeLocked(now)
	}

	db.entries[key] = entry{estimate: estimate, expiresAt: now.Add(db.ttl)}

	return nil
}

// purgeLocked drops expired entries, and everything if the cache is still full.
func (db *DB) purgeLocked(now time.Time) {
	for key, e := range db.entries {
		if !now.Before(e.expiresAt) {
			delete(db.entries, key)
		}
	}

	if len(db.entries) >= db.maxEntries {
		db.l.LogWarnf("quote cache full with %d live entries, flushing", len(db.entries))
		clear(db.entries)
	}
}

func (db *DB) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()

	return len(db.entries)
}
