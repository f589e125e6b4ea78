package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/avstrong/homestay/internal/booking"
)

const keyPrefix = "homestay:quote:"

type Config struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// Cache stores estimates as JSON so several instances can share them.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

func New(conf Config) *Cache {
	return NewWithClient(goredis.NewClient(&goredis.Options{
		Addr:     conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
	}), conf.TTL)
}

func NewWithClient(client *goredis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) GetEstimate(ctx context.Context, key string) (*booking.Estimate, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, booking.ErrCacheMiss
	}

	if err != nil {
		return nil, fmt.Errorf("get estimate %s: %w", key, err)
	}

	var estimate booking.Estimate
	if err := json.Unmarshal(val, &estimate); err != nil {
		return nil, fmt.Errorf("decode estimate %s: %w", key, err)
	}

	return &estimate, nil
}

func (c *Cache) SaveEstimate(ctx context.Context, key string, estimate *booking.Estimate) error {
	data, err := json.Marshal(estimate)
	if err != nil {
		return fmt.Errorf("encode estimate %s: %w", key, err)
	}

	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set estimate %s: %w", key, err)
	}

	return nil
}
