package gate

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedRuleSource is a read-through TTL cache over a RuleSource. The TTL
// is bounded so a stale toggle heals itself even if invalidation fanout is
// lost. Errors are never cached: a cache miss followed by a store failure
// surfaces the error so the gate's fail-closed policy applies to it too.
type CachedRuleSource struct {
	src   RuleSource
	cache *cache.Cache
}

func NewCachedRuleSource(src RuleSource, ttl time.Duration) *CachedRuleSource {
	return &CachedRuleSource{
		src:   src,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedRuleSource) RuleForPath(ctx context.Context, path string) (Rule, error) {
	if x, found := c.cache.Get(path); found {
		return x.(Rule), nil
	}

	rule, err := c.src.RuleForPath(ctx, path)
	if err != nil {
		return Rule{}, err
	}

	c.cache.Set(path, rule, cache.DefaultExpiration)
	return rule, nil
}

// Invalidate drops every cached rule. Called when an admin toggle event
// arrives, locally or from another instance.
func (c *CachedRuleSource) Invalidate() {
	c.cache.Flush()
}
