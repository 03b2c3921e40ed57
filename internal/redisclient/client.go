package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	snapshotKey = "catalog:snapshot"
	sessionKey  = "session:token"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// StoreSnapshot replaces the cached catalog snapshot wholesale. The cache
// holds exactly one snapshot; partial updates are never written.
func (c *Client) StoreSnapshot(ctx context.Context, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, snapshotKey, data, ttl).Err()
}

// LoadSnapshot returns the cached snapshot bytes, or (nil, nil) on a miss.
func (c *Client) LoadSnapshot(ctx context.Context) ([]byte, error) {
	data, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return data, nil
}

// InvalidateSnapshot drops the cached snapshot so the next load refetches.
func (c *Client) InvalidateSnapshot(ctx context.Context) error {
	return c.rdb.Del(ctx, snapshotKey).Err()
}

// StoreSessionToken persists the upstream session token so a restarted
// gateway keeps its session.
func (c *Client) StoreSessionToken(ctx context.Context, token string) error {
	return c.rdb.Set(ctx, sessionKey, token, 0).Err()
}

// LoadSessionToken returns the persisted session token, empty on a miss.
func (c *Client) LoadSessionToken(ctx context.Context) (string, error) {
	token, err := c.rdb.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session token: %w", err)
	}
	return token, nil
}

// ClearSessionToken removes the persisted session token.
func (c *Client) ClearSessionToken(ctx context.Context) error {
	return c.rdb.Del(ctx, sessionKey).Err()
}
