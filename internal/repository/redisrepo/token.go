package redisrepo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Token struct {
	rdb *redis.Client
}

func NewToken(rdb *redis.Client) *Token {
	return &Token{
		rdb: rdb,
	}
}

func (r *Token) Get(ctx context.Context, sessionID string) (string, bool, error) {
	value, err := r.rdb.Get(ctx, TokenKey(sessionID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (r *Token) Set(ctx context.Context, sessionID string, token string, ttl time.Duration) error {
	return r.rdb.Set(ctx, TokenKey(sessionID), token, ttl).Err()
}

func (r *Token) Del(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, TokenKey(sessionID)).Err()
}
