package entitlement

import (
	"context"
	"fmt"
	"time"

	"civicmap-be/pkg/gate"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CachedChecker memoizes capability lookups behind a bounded TTL.
// Only definitive answers are cached; a store failure on a cache miss
// propagates so the gate denies instead of serving a guess.
type CachedChecker struct {
	inner gate.EntitlementChecker
	cache *cache.Cache
}

func NewCachedChecker(inner gate.EntitlementChecker, ttl time.Duration) *CachedChecker {
	return &CachedChecker{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func cacheKey(userID uuid.UUID, feature string) string {
	return fmt.Sprintf("%s:%s", userID, feature)
}

func (c *CachedChecker) HasFeature(ctx context.Context, userID uuid.UUID, feature string) (bool, error) {
	key := cacheKey(userID, feature)
	if x, found := c.cache.Get(key); found {
		return x.(bool), nil
	}

	held, err := c.inner.HasFeature(ctx, userID, feature)
	if err != nil {
		return false, err
	}

	c.cache.Set(key, held, cache.DefaultExpiration)
	return held, nil
}

// Flush drops every cached answer. Used when a capability definition
// itself changes, which can affect any number of users at once.
func (c *CachedChecker) Flush() {
	c.cache.Flush()
}

// InvalidateUser drops cached answers for one user, called after a
// grant or revoke so the change takes effect without waiting out the TTL.
func (c *CachedChecker) InvalidateUser(userID uuid.UUID) {
	prefix := userID.String() + ":"
	for key := range c.cache.Items() {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			c.cache.Delete(key)
		}
	}
}
