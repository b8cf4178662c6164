package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"freelanceBack/internal/models"
)

const (
	freelancerListKey = "freelancers:directory"
	freelancerListTTL = 5 * time.Minute
)

// FreelancerCache keeps the freelancer directory listing in Redis so the
// most-read page of the site does not hit MySQL on every request.
type FreelancerCache struct {
	rdb *redis.Client
}

func NewFreelancerCache(rdb *redis.Client) *FreelancerCache {
	return &FreelancerCache{rdb: rdb}
}

// Get returns the cached listing, or ok=false on miss or any Redis error.
// Cache failures degrade to a database read, never to a request failure.
func (c *FreelancerCache) Get(ctx context.Context) ([]models.User, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, freelancerListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, false
	}
	return users, true
}

func (c *FreelancerCache) Set(ctx context.Context, users []models.User) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(users)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, freelancerListKey, data, freelancerListTTL)
}

// Invalidate drops the listing after a profile change.
func (c *FreelancerCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, freelancerListKey)
}
