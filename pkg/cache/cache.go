package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Version history is deliberately never cached: the spec for
// version listings requires a fresh read on every call.
const (
	TTLBlog     = 5 * time.Minute  // published blog pages
	TTLSettings = 10 * time.Minute // site settings (rarely change)
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixBlogSlug = "blog:slug:"
	PrefixSettings = "settings:"
)

// Service Redis cache service interface. All methods are nil-safe: with no
// Redis connection the service degrades to pass-through.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Published blog cache, keyed by slug
	GetBlogBySlug(ctx context.Context, slug string) ([]byte, error)
	SetBlogBySlug(ctx context.Context, slug string, data interface{}) error
	InvalidateBlog(ctx context.Context, slug string) error

	// Site settings cache
	GetSettings(ctx context.Context) ([]byte, error)
	SetSettings(ctx context.Context, data interface{}) error
	InvalidateSettings(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a Redis-backed cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) blogSlugKey(slug string) string {
	return PrefixBlogSlug + slug
}

func (c *redisCache) GetBlogBySlug(ctx context.Context, slug string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.blogSlugKey(slug)).Bytes()
}

func (c *redisCache) SetBlogBySlug(ctx context.Context, slug string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.blogSlugKey(slug), jsonData, TTLBlog).Err()
}

func (c *redisCache) InvalidateBlog(ctx context.Context, slug string) error {
	if c.client == nil || slug == "" {
		return nil
	}
	return c.client.Del(ctx, c.blogSlugKey(slug)).Err()
}

func (c *redisCache) GetSettings(ctx context.Context) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, PrefixSettings+"all").Bytes()
}

func (c *redisCache) SetSettings(ctx context.Context, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PrefixSettings+"all", jsonData, TTLSettings).Err()
}

func (c *redisCache) InvalidateSettings(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, PrefixSettings+"all").Err()
}
