package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"inmobiliaria_api/internal/domain/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ListingCache holds property listing results keyed by their filter. A
// cache failure is never surfaced to the caller: reads miss and writes are
// dropped, the repository stays authoritative.
type ListingCache interface {
	Get(ctx context.Context, filter model.ListingFilter) ([]model.Property, bool)
	Set(ctx context.Context, filter model.ListingFilter, properties []model.Property)
	Invalidate(ctx context.Context)
}

const listingGenKey = "properties:gen"

type redisListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisListingCache(rdb *redis.Client, ttl time.Duration) ListingCache {
	return &redisListingCache{rdb: rdb, ttl: ttl}
}

// key prefixes the filter key with the current generation. Mutations bump
// the generation, so stale entries simply stop being addressable and expire.
func (c *redisListingCache) key(ctx context.Context, filter model.ListingFilter) (string, error) {
	gen, err := c.rdb.Get(ctx, listingGenKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("properties:%d:%s", gen, FilterKey(filter)), nil
}

func (c *redisListingCache) Get(ctx context.Context, filter model.ListingFilter) ([]model.Property, bool) {
	key, err := c.key(ctx, filter)
	if err != nil {
		log.Debug().Err(err).Msg("listing cache: generation lookup failed")
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Debug().Err(err).Str("key", key).Msg("listing cache: read failed")
		}
		return nil, false
	}
	var properties []model.Property
	if err := json.Unmarshal(payload, &properties); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("listing cache: corrupt entry")
		return nil, false
	}
	return properties, true
}

func (c *redisListingCache) Set(ctx context.Context, filter model.ListingFilter, properties []model.Property) {
	key, err := c.key(ctx, filter)
	if err != nil {
		return
	}
	payload, err := json.Marshal(properties)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("listing cache: write failed")
	}
}

func (c *redisListingCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, listingGenKey).Err(); err != nil {
		log.Debug().Err(err).Msg("listing cache: invalidate failed")
	}
}

// FilterKey builds a stable cache key fragment from a listing filter.
func FilterKey(f model.ListingFilter) string {
	featured := ""
	if f.Featured != nil {
		featured = strconv.FormatBool(*f.Featured)
	}
	minPrice, maxPrice := "", ""
	if f.MinPrice != nil {
		minPrice = strconv.FormatFloat(*f.MinPrice, 'f', -1, 64)
	}
	if f.MaxPrice != nil {
		maxPrice = strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64)
	}
	return fmt.Sprintf("t=%s|s=%s|f=%s|min=%s|max=%s|o=%s",
		f.Type, f.Status, featured, minPrice, maxPrice, f.Sort)
}

type noopListingCache struct{}

// NewNoopListingCache returns a cache that never hits. Used when Redis is
// not configured (file-driver deployments) and in tests.
func NewNoopListingCache() ListingCache {
	return noopListingCache{}
}

func (noopListingCache) Get(context.Context, model.ListingFilter) ([]model.Property, bool) {
	return nil, false
}
func (noopListingCache) Set(context.Context, model.ListingFilter, []model.Property) {}
func (noopListingCache) Invalidate(context.Context)                                 {}
