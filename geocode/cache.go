package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guidemate/guidemate/geo"
)

// DefaultCacheTTL bounds how long a resolved place stays cached. Street
// addresses move rarely; a day keeps the upstream traffic low without
// serving stale data forever.
const DefaultCacheTTL = 24 * time.Hour

// CachedGeocoder wraps a Geocoder with a Redis cache. Entries expire via
// Redis TTL; there is no process-local state, so any number of instances
// can share one cache.
type CachedGeocoder struct {
	next Geocoder
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedGeocoder wraps next with a Redis-backed cache. ttl <= 0 selects
// DefaultCacheTTL.
func NewCachedGeocoder(next Geocoder, rdb *redis.Client, ttl time.Duration) *CachedGeocoder {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedGeocoder{next: next, rdb: rdb, ttl: ttl}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (Place, error) {
	key := "geocode:q:" + query
	if p, ok := c.lookup(ctx, key); ok {
		return p, nil
	}
	p, err := c.next.Geocode(ctx, query)
	if err != nil {
		return Place{}, err
	}
	c.store(ctx, key, p)
	return p, nil
}

func (c *CachedGeocoder) Reverse(ctx context.Context, coord geo.Coordinate) (Place, error) {
	// 5 decimal places is ~1 m; close samples share a cache entry.
	key := fmt.Sprintf("geocode:r:%.5f,%.5f", coord.Lat, coord.Lon)
	if p, ok := c.lookup(ctx, key); ok {
		return p, nil
	}
	p, err := c.next.Reverse(ctx, coord)
	if err != nil {
		return Place{}, err
	}
	c.store(ctx, key, p)
	return p, nil
}

// lookup treats any cache failure as a miss; the upstream call still works
// when Redis is down.
func (c *CachedGeocoder) lookup(ctx context.Context, key string) (Place, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return Place{}, false
	}
	var p Place
	if err := json.Unmarshal(data, &p); err != nil {
		return Place{}, false
	}
	return p, true
}

func (c *CachedGeocoder) store(ctx context.Context, key string, p Place) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, data, c.ttl)
}
