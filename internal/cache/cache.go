// Package cache holds the in-process cache for paginated inventory listings.
//
// Keys are (version, page, pageSize) tuples. Invalidation bumps a single
// atomic version counter, which orphans every entry written under a previous
// version in O(1). This is correct for arbitrary page/pageSize combinations,
// unlike sweeping a fixed grid of known keys, which leaves every key outside
// the grid stale.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"logitrack/internal/model"
)

// DefaultTTL is the absolute expiry applied to listing entries.
const DefaultTTL = 30 * time.Second

type key struct {
	version  uint64
	page     int
	pageSize int
}

type entry struct {
	items     []model.InventoryItem
	expiresAt time.Time
}

// Listings caches pages of inventory listings with a TTL. It is safe for
// concurrent use. The clock is injectable so TTL behavior is testable
// deterministically.
type Listings struct {
	ttl time.Duration
	now func() time.Time

	version atomic.Uint64

	mu      sync.RWMutex
	entries map[key]entry
}

// Option configures a Listings cache.
type Option func(*Listings)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(l *Listings) { l.ttl = ttl }
}

// WithClock overrides the time source. Tests use this to step a fake clock
// past entry expiry.
func WithClock(now func() time.Time) Option {
	return func(l *Listings) { l.now = now }
}

// NewListings creates an empty listings cache.
func NewListings(opts ...Option) *Listings {
	l := &Listings{
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[key]entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Get returns the cached page, the version observed at lookup time, and
// whether it was a hit. Entries written before the last invalidation or past
// their expiry are misses. On a miss the caller passes the returned version
// back to Put, pinning the eventual entry to the state it was loaded against.
func (l *Listings) Get(page, pageSize int) ([]model.InventoryItem, uint64, bool) {
	version := l.version.Load()
	k := key{version: version, page: page, pageSize: pageSize}

	l.mu.RLock()
	e, ok := l.entries[k]
	l.mu.RUnlock()

	if !ok || l.now().After(e.expiresAt) {
		return nil, version, false
	}
	return e.items, version, true
}

// Put stores a page under the version captured by the preceding Get, with an
// absolute expiry of now+TTL. If an invalidation landed between the Get and
// the Put the payload was loaded against overwritten state, so it is dropped
// instead of published. Dead entries (expired or from previous versions) are
// pruned on the way, so invalidated generations don't accumulate.
func (l *Listings) Put(version uint64, page, pageSize int, items []model.InventoryItem) {
	current := l.version.Load()
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, e := range l.entries {
		if k.version != current || now.After(e.expiresAt) {
			delete(l.entries, k)
		}
	}

	if version != current {
		return
	}

	l.entries[key{version: version, page: page, pageSize: pageSize}] = entry{
		items:     items,
		expiresAt: now.Add(l.ttl),
	}
}

// InvalidateAll drops every cached page by bumping the version counter.
// Called after any inventory-affecting write: insert, delete, or a
// reconciliation-driven quantity change.
func (l *Listings) InvalidateAll() {
	l.version.Add(1)
}

// Len reports the number of stored entries, dead or alive.
func (l *Listings) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
