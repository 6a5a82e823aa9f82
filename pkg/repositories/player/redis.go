package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fadedpez/tong777/pkg/entities"
)

// RedisRepository stores each player as a JSON value under PREFIX:player:<username>
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository connects to url and verifies the connection
func NewRedisRepository(url, prefix string) (*RedisRepository, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisRepositoryWithClient(client, prefix), nil
}

// NewRedisRepositoryWithClient wraps an existing client
func NewRedisRepositoryWithClient(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisRepository) key(username string) string {
	return fmt.Sprintf("%s:player:%s", r.prefix, username)
}

// Load implements Repository
func (r *RedisRepository) Load(ctx context.Context, username string) (*entities.PlayerRecord, error) {
	data, err := r.client.Get(ctx, r.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	var record entities.PlayerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode player %s: %w", username, err)
	}
	return &record, nil
}

// Save implements Repository
func (r *RedisRepository) Save(ctx context.Context, record *entities.PlayerRecord) error {
	if err := ValidateUsername(record.Username); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(record.Username), data, 0).Err()
}

// Close implements Repository
func (r *RedisRepository) Close() error {
	return r.client.Close()
}
