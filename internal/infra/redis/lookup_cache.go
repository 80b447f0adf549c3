package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/adapter"
	"telegram-city-weather/internal/infra/metrics"
)

var _ adapter.CityLookupGateway = (*CachedCityLookup)(nil)

// CachedCityLookup is a read-through cache in front of the city lookup
// gateway. City records change rarely, so search and detail responses are
// cached under a TTL. Cache trouble never fails a request: any Redis error
// degrades to a direct provider call.
type CachedCityLookup struct {
	next   adapter.CityLookupGateway
	client RedisClient
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewCachedCityLookup(next adapter.CityLookupGateway, client RedisClient, ttl time.Duration, log *zerolog.Logger) *CachedCityLookup {
	return &CachedCityLookup{next: next, client: client, ttl: ttl, log: log}
}

func (c *CachedCityLookup) Search(ctx context.Context, namePrefix string, limit int) ([]model.CityCandidate, error) {
	key := fmt.Sprintf("geo:search:%s:%d", strings.ToLower(strings.TrimSpace(namePrefix)), limit)

	var cached []model.CityCandidate
	if c.fetch(ctx, key, &cached) {
		return cached, nil
	}

	cities, err := c.next.Search(ctx, namePrefix, limit)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, cities)
	return cities, nil
}

func (c *CachedCityLookup) Details(ctx context.Context, id string) (*model.CityCandidate, error) {
	key := "geo:city:" + id

	var cached model.CityCandidate
	if c.fetch(ctx, key, &cached) {
		return &cached, nil
	}

	city, err := c.next.Details(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, city)
	return city, nil
}

// TopByPopulation is served live: the ranking feature should reflect the
// provider's current ordering, and the call is infrequent.
func (c *CachedCityLookup) TopByPopulation(ctx context.Context, limit int) ([]model.CityCandidate, error) {
	return c.next.TopByPopulation(ctx, limit)
}

// fetch reports whether key was found and decoded into v.
func (c *CachedCityLookup) fetch(ctx context.Context, key string, v interface{}) bool {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if err == redis.Nil {
			metrics.IncCache("geo_lookup", "miss")
		} else {
			metrics.IncCache("geo_lookup", "error")
			c.log.Debug().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		metrics.IncCache("geo_lookup", "error")
		c.log.Debug().Err(err).Str("key", key).Msg("cache entry corrupt")
		return false
	}
	metrics.IncCache("geo_lookup", "hit")
	return true
}

// store is best-effort.
func (c *CachedCityLookup) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}
