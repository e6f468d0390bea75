package waitlist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisStore keeps one key per email plus a counter set.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures NewRedisStore
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return NewRedisStoreFromClient(client, opts.KeyPrefix), nil
}

func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "vgrab:waitlist"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) emailKey(email string) string {
	return fmt.Sprintf("%s:email:%s", s.prefix, email)
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":emails"
}

func (s *RedisStore) Add(ctx context.Context, email string) (*Entry, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	entry := newEntry(email)
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	ok, err := s.client.SetNX(ctx, s.emailKey(email), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, ErrExists
	}
	if err := s.client.SAdd(ctx, s.indexKey(), email).Err(); err != nil {
		log.WithError(err).WithField("email", email).Warn("waitlist index update failed")
	}
	return entry, nil
}

func (s *RedisStore) Exists(ctx context.Context, email string) (bool, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return false, err
	}
	n, err := s.client.Exists(ctx, s.emailKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	n, err := s.client.SCard(ctx, s.indexKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("redis scard: %w", err)
	}
	return n, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
