// Package cache wraps ristretto with TTLs and contact-scoped invalidation.
// Traversal results stay valid only while the graph around the involved
// contacts is unchanged, so every key embeds per-contact epoch counters and
// invalidation is a cheap epoch bump instead of a scan.
package cache

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

const (
	defaultNumCounters = 1e6
	defaultMaxCost     = 1e7
	defaultBufferItems = 64
	defaultTTL         = 10 * time.Minute
)

// Config configures the traversal cache.
type Config struct {
	NumCounters int64
	MaxCost     int64
	TTL         time.Duration
}

// Cache is a TTL cache for traversal results keyed by stable FNV-64a hashes.
type Cache struct {
	cache *ristretto.Cache
	ttl   time.Duration

	mu     sync.Mutex
	epochs map[string]uint64
}

// New creates a Cache. A nil config uses defaults.
func New(config *Config) (*Cache, error) {
	numCounters := int64(defaultNumCounters)
	maxCost := int64(defaultMaxCost)
	ttl := defaultTTL

	if config != nil {
		if config.NumCounters > 0 {
			numCounters = config.NumCounters
		}
		if config.MaxCost > 0 {
			maxCost = config.MaxCost
		}
		if config.TTL > 0 {
			ttl = config.TTL
		}
	}

	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: defaultBufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &Cache{
		cache:  inner,
		ttl:    ttl,
		epochs: make(map[string]uint64),
	}, nil
}

// Key builds a stable cache key for an operation scoped to the given contacts.
// The key changes whenever any involved contact is invalidated.
func (c *Cache) Key(op string, contactIDs ...string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(op))

	c.mu.Lock()
	for _, id := range contactIDs {
		fmt.Fprintf(h, "|%s@%d", id, c.epochs[id])
	}
	c.mu.Unlock()

	return h.Sum64()
}

func (c *Cache) Get(key uint64) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *Cache) Set(key uint64, value any) {
	if c == nil {
		return
	}
	c.cache.SetWithTTL(key, value, 1, c.ttl)
}

// InvalidateContact makes every cached entry scoped to the contact unreachable.
// External collaborators must call this after mutating the contact's edges.
func (c *Cache) InvalidateContact(id string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.epochs[id]++
	c.mu.Unlock()
}

func (c *Cache) Close() {
	if c != nil {
		c.cache.Close()
	}
}
