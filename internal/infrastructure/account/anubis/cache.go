package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/user"
)

type cacheEntry struct {
	principal user.Principal
	expiresAt time.Time
}

// principalCache remembers verified tokens for a short TTL, keyed by token
// digest so raw bearer tokens are never retained. When full it drops expired
// entries first, then the entry closest to expiry.
type principalCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newPrincipalCache(ttl time.Duration, maxEntries int) *principalCache {
	return &principalCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *principalCache) Get(token string) (user.Principal, bool) {
	key := tokenKey(token)
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}
	if !entry.expiresAt.After(now) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return user.Principal{}, false
	}
	return entry.principal, true
}

func (c *principalCache) Set(token string, principal user.Principal) {
	if c.ttl <= 0 {
		return
	}
	key := tokenKey(token)
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		for k, entry := range c.entries {
			if !entry.expiresAt.After(now) {
				delete(c.entries, k)
			}
		}
		if len(c.entries) >= c.maxEntries {
			c.evictSoonest()
		}
	}

	c.entries[key] = cacheEntry{principal: principal, expiresAt: now.Add(c.ttl)}
}

func (c *principalCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *principalCache) evictSoonest() {
	var (
		victim  string
		soonest time.Time
	)
	for key, entry := range c.entries {
		if victim == "" || entry.expiresAt.Before(soonest) {
			victim, soonest = key, entry.expiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
