package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CompanyCache remembers which company a user owns so the company
// middleware can skip a lookup on every request.
type CompanyCache struct {
	cache *cache.Cache
}

func NewCompanyCache(ttl time.Duration) *CompanyCache {
	return &CompanyCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CompanyCache) Get(userId uuid.UUID) (uuid.UUID, bool) {
	if x, found := c.cache.Get(userId.String()); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (c *CompanyCache) Set(userId, companyId uuid.UUID) {
	c.cache.Set(userId.String(), companyId, cache.DefaultExpiration)
}

func (c *CompanyCache) Invalidate(userId uuid.UUID) {
	c.cache.Delete(userId.String())
}
