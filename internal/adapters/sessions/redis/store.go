package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/ports/auth"

	goredis "github.com/redis/go-redis/v9"
)

const defaultPrefix = "pet-adoption:session:"

type cmdable interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd
	Get(ctx context.Context, key string) *goredis.StringCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// Store guarda cada sesión como JSON con TTL bajo `{prefix}{jti}`.
type Store struct {
	rdb    cmdable
	prefix string
}

type record struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Connect parsea la URL, hace ping y devuelve el cliente para poder cerrarlo al apagar.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func NewStore(rdb cmdable, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) Put(ctx context.Context, sessionID string, c auth.Claims, ttl time.Duration) error {
	b, err := json.Marshal(record{UserID: c.UserID, Email: c.Email})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(sessionID), b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (auth.Claims, error) {
	raw, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return auth.Claims{}, auth.ErrSessionNotFound
	}
	if err != nil {
		return auth.Claims{}, fmt.Errorf("redis get session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return auth.Claims{}, fmt.Errorf("decode session: %w", err)
	}
	return auth.Claims{UserID: rec.UserID, Email: rec.Email}, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}
