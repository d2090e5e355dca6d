// Package drafts persists in-progress task edits as an explicit save point:
// "persist draft for key K" / "load draft for key K". The payload is opaque
// JSON owned by the task workspace.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no draft exists for the task.
var ErrNotFound = errors.New("draft not found")

// Store is the draft collaborator interface the task workspace depends on.
type Store interface {
	Save(ctx context.Context, taskID string, payload []byte) error
	Load(ctx context.Context, taskID string) ([]byte, error)
	Delete(ctx context.Context, taskID string) error
}

// RedisStore keeps drafts in Redis keyed by task id.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func draftKey(taskID string) string {
	return "draft:task:" + taskID
}

// Save writes the draft payload. Drafts have no expiry; the save point is
// explicit, so stale drafts are the workspace's call to clear.
func (s *RedisStore) Save(ctx context.Context, taskID string, payload []byte) error {
	if err := s.client.Set(ctx, draftKey(taskID), payload, 0).Err(); err != nil {
		return fmt.Errorf("save draft %s: %w", taskID, err)
	}
	return nil
}

// Load reads the draft payload, ErrNotFound when none was saved.
func (s *RedisStore) Load(ctx context.Context, taskID string) ([]byte, error) {
	data, err := s.client.Get(ctx, draftKey(taskID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft %s: %w", taskID, err)
	}
	return data, nil
}

// Delete clears the draft, typically after the task is submitted.
func (s *RedisStore) Delete(ctx context.Context, taskID string) error {
	if err := s.client.Del(ctx, draftKey(taskID)).Err(); err != nil {
		return fmt.Errorf("delete draft %s: %w", taskID, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
