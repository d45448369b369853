package services

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"

	"portfolio.dev/internal/feed"
)

const (
	// DefaultMountTTL is how long an idle mount is kept for follow-up requests
	DefaultMountTTL = 10 * time.Minute
	// DefaultMaxMounts bounds the number of live mounts
	DefaultMaxMounts = 256
)

// mount is a loaded feed shared by the requests of one page load. mu
// serializes the multi-step state transitions made on its feed.
type mount struct {
	mu       sync.Mutex
	feed     *feed.Feed
	lastUsed time.Time
}

// mountRegistry keeps loaded feeds by id so that paging and the detail
// overlay reuse the data of the first load. Least recently used mounts are
// evicted past the limit and idle mounts expire after ttl; both are closed.
type mountRegistry struct {
	mu     sync.Mutex
	cache  *lru.Cache
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func newMountRegistry(ttl time.Duration, maxMounts int, logger *zap.Logger) *mountRegistry {
	if ttl <= 0 {
		ttl = DefaultMountTTL
	}
	if maxMounts <= 0 {
		maxMounts = DefaultMaxMounts
	}
	r := &mountRegistry{
		cache:  lru.New(maxMounts),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
	r.cache.OnEvicted = func(key lru.Key, value interface{}) {
		value.(*mount).feed.Close()
		r.logger.Debug("Mount released", zap.Any("mount", key))
	}
	return r
}

// get returns the live mount for id and marks it used
func (r *mountRegistry) get(id string) (*mount, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	m := v.(*mount)
	now := r.now()
	if now.Sub(m.lastUsed) > r.ttl {
		r.cache.Remove(id)
		return nil, false
	}
	m.lastUsed = now
	return m, true
}

func (r *mountRegistry) add(f *feed.Feed) *mount {
	m := &mount{feed: f}
	r.mu.Lock()
	defer r.mu.Unlock()
	m.lastUsed = r.now()
	r.cache.Add(f.ID(), m)
	return m
}

func (r *mountRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}

// closeAll unmounts every feed
func (r *mountRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Clear()
}
