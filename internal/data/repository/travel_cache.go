package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pilgrimage-booking/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TravelCache keeps travels with their price entries by ref. Capacity
// figures are derived from reservations and never cached. Cache failures
// are logged and treated as misses.
type TravelCache interface {
	Get(ctx context.Context, ref string) (*entity.Travel, bool)
	Set(ctx context.Context, travel *entity.Travel)
	Invalidate(ctx context.Context, ref string)
}

type redisTravelCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewTravelCache returns a Redis-backed cache, or a no-op cache when client is nil.
func NewTravelCache(client *redis.Client, ttl time.Duration, log *zap.Logger) TravelCache {
	if client == nil {
		return NopTravelCache{}
	}
	return &redisTravelCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("repository", "travel_cache")),
	}
}

func travelKey(ref string) string {
	return "travel:" + ref
}

func (c *redisTravelCache) Get(ctx context.Context, ref string) (*entity.Travel, bool) {
	data, err := c.client.Get(ctx, travelKey(ref)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Failed to read travel cache", zap.Error(err), zap.String("ref", ref))
		return nil, false
	}

	var travel entity.Travel
	if err := json.Unmarshal(data, &travel); err != nil {
		c.log.Warn("Dropping unreadable travel cache entry", zap.Error(err), zap.String("ref", ref))
		c.Invalidate(ctx, ref)
		return nil, false
	}
	return &travel, true
}

func (c *redisTravelCache) Set(ctx context.Context, travel *entity.Travel) {
	data, err := json.Marshal(travel)
	if err != nil {
		c.log.Warn("Failed to encode travel for cache", zap.Error(err), zap.String("ref", travel.Ref))
		return
	}
	if err := c.client.Set(ctx, travelKey(travel.Ref), data, c.ttl).Err(); err != nil {
		c.log.Warn("Failed to write travel cache", zap.Error(err), zap.String("ref", travel.Ref))
	}
}

func (c *redisTravelCache) Invalidate(ctx context.Context, ref string) {
	if err := c.client.Del(ctx, travelKey(ref)).Err(); err != nil {
		c.log.Warn("Failed to invalidate travel cache", zap.Error(err), zap.String("ref", ref))
	}
}

type NopTravelCache struct{}

func (NopTravelCache) Get(context.Context, string) (*entity.Travel, bool) { return nil, false }
func (NopTravelCache) Set(context.Context, *entity.Travel)                {}
func (NopTravelCache) Invalidate(context.Context, string)                 {}
