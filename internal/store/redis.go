package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

const statePrefix = "bingo:state:"

// RedisStore persists board snapshots as JSON values keyed per player.
// Entries carry no TTL: a board lives until the player resets it.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// NewRedisStoreFromClient wraps an existing client (used by tests).
func NewRedisStoreFromClient(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func keyState(player string) string { return statePrefix + strings.TrimSpace(player) }

func (s *RedisStore) Load(ctx context.Context, player string) (*bingodto.BoardSnapshot, error) {
	raw, err := s.rdb.Get(ctx, keyState(player)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	var snap bingodto.BoardSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &snap, nil
}

func (s *RedisStore) Save(ctx context.Context, player string, snap *bingodto.BoardSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.rdb.Set(ctx, keyState(player), raw, 0).Err(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, player string) error {
	return s.rdb.Del(ctx, keyState(player)).Err()
}

func (s *RedisStore) Players(ctx context.Context) ([]string, error) {
	keys, err := s.rdb.Keys(ctx, statePrefix+"*").Result()
	if err != nil {
		return nil, err
	}
	players := make([]string, 0, len(keys))
	for _, k := range keys {
		players = append(players, strings.TrimPrefix(k, statePrefix))
	}
	sort.Strings(players)
	return players, nil
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
