package bredis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Client wraps redis client
type Client struct {
	*redis.Client
	ctx       context.Context
	keyPrefix string
}

// RedisConfig holds redis connection configuration
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"keyPrefix"`
}

// LoadRedisConfig loads redis configuration from a yaml file
func LoadRedisConfig(path string) (*RedisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read redis config file: %w", err)
	}

	var config RedisConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse redis config file: %w", err)
	}

	if config.Addr == "" {
		config.Addr = "localhost:6379"
	}

	return &config, nil
}

// New creates a new Redis client. Returns nil when the server is not
// reachable; callers treat a nil client as rate limiting disabled.
func New(addr, password string, db int, keyPrefix string) *Client {
	client := &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ctx:       context.Background(),
		keyPrefix: keyPrefix,
	}

	if _, err := client.Ping(client.ctx).Result(); err != nil {
		return nil
	}

	return client
}

// NewFromConfig creates a client from a config file
func NewFromConfig(configPath string) (*Client, error) {
	config, err := LoadRedisConfig(configPath)
	if err != nil {
		return nil, err
	}
	return New(config.Addr, config.Password, config.DB, config.KeyPrefix), nil
}

func (c *Client) key(k string) string {
	if c.keyPrefix == "" {
		return k
	}
	return fmt.Sprintf("%s:%s", c.keyPrefix, k)
}

// Delete removes keys
func (c *Client) Delete(keys ...string) error {
	prefixedKeys := make([]string, len(keys))
	for i, k := range keys {
		prefixedKeys[i] = c.key(k)
	}
	return c.Client.Del(c.ctx, prefixedKeys...).Err()
}

// Incr increments a counter
func (c *Client) Incr(key string) (int64, error) {
	return c.Client.Incr(c.ctx, c.key(key)).Result()
}

// Expire sets TTL on a key
func (c *Client) Expire(key string, ttl time.Duration) error {
	return c.Client.Expire(c.ctx, c.key(key), ttl).Err()
}

// GetTTL returns remaining TTL
func (c *Client) GetTTL(key string) time.Duration {
	ttl, _ := c.Client.TTL(c.ctx, c.key(key)).Result()
	return ttl
}

// ============ Rate Limiting ============

// RateLimitResult holds rate limit check result
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// CheckRateLimit checks if identifier is within limit. Redis being down
// fails open.
func (c *Client) CheckRateLimit(identifier string, limit int64, window time.Duration) *RateLimitResult {
	key := "rl:" + identifier
	count, err := c.Incr(key)
	if err != nil {
		return &RateLimitResult{Allowed: true, Remaining: limit}
	}

	if count == 1 {
		_ = c.Expire(key, window)
	}

	if count > limit {
		return &RateLimitResult{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: c.GetTTL(key),
		}
	}

	return &RateLimitResult{
		Allowed:   true,
		Remaining: limit - count,
	}
}

// ResetRateLimit resets rate limit for identifier
func (c *Client) ResetRateLimit(identifier string) {
	_ = c.Delete("rl:" + identifier)
}
