package marketplace

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key layout: one JSON blob per tool under toolKeyPrefix, the id
// set under toolSetKey, and one JSON id list per user key.
const (
	toolKeyPrefix = "marketplace:tool:"
	toolSetKey    = "marketplace:tools"
	userKeyPrefix = "marketplace:user:"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

// RedisStore implements Store on go-redis/v9, for catalogs shared by
// several processes. Redis serializes individual commands, but the
// marketplace's read-then-write sequences are not transactional here;
// run a single writer per tool id or front the store with one service
// instance.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis with the given options and verifies
// connectivity with a ping.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// GetTool returns the entry for id, or ErrToolNotFound.
func (s *RedisStore) GetTool(ctx context.Context, id string) (*Tool, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	data, err := s.client.Get(ctx, toolKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to get tool %s: %w", id, err)
	}

	var t Tool
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool %s: %w", id, err)
	}
	return &t, nil
}

// PutTool stores the entry keyed by its definition id and adds the id to
// the catalog set.
func (s *RedisStore) PutTool(ctx context.Context, t *Tool) error {
	if t == nil || t.Definition.ID == "" {
		return ErrInvalidID
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal tool: %w", err)
	}

	id := t.Definition.ID
	if err := s.client.Set(ctx, toolKeyPrefix+id, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store tool %s: %w", id, err)
	}
	if err := s.client.SAdd(ctx, toolSetKey, id).Err(); err != nil {
		return fmt.Errorf("failed to add tool %s to catalog set: %w", id, err)
	}
	return nil
}

// ListTools returns all stored entries. Entries whose blob has gone
// missing since the id was listed are skipped.
func (s *RedisStore) ListTools(ctx context.Context) ([]*Tool, error) {
	ids, err := s.client.SMembers(ctx, toolSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog set: %w", err)
	}

	tools := make([]*Tool, 0, len(ids))
	for _, id := range ids {
		t, err := s.GetTool(ctx, id)
		if err != nil {
			if err == ErrToolNotFound {
				continue
			}
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// GetUserTools returns the tool-id list stored under key.
func (s *RedisStore) GetUserTools(ctx context.Context, key string) ([]string, error) {
	data, err := s.client.Get(ctx, userKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user list %s: %w", key, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user list %s: %w", key, err)
	}
	return ids, nil
}

// PutUserTools replaces the tool-id list stored under key.
func (s *RedisStore) PutUserTools(ctx context.Context, key string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal user list: %w", err)
	}
	if err := s.client.Set(ctx, userKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store user list %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
