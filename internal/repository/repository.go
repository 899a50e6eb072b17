package repository

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/web-client/internal/repository/memory"
	"github.com/BloggingApp/web-client/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token not found")

// Token is the key-value store holding each session's bearer token under a
// fixed key. Get returns ErrTokenNotFound when nothing is stored.
type Token interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID string, token string, ttl time.Duration) error
	Del(ctx context.Context, sessionID string) error
}

type Repository struct {
	Token Token
}

func New(rdb *redis.Client) *Repository {
	return &Repository{
		Token: &tokenRepo{redisrepo.NewToken(rdb)},
	}
}

func NewInMemory() *Repository {
	return &Repository{
		Token: &tokenRepo{memory.NewToken()},
	}
}

type tokenBackend interface {
	Get(ctx context.Context, sessionID string) (string, bool, error)
	Set(ctx context.Context, sessionID string, token string, ttl time.Duration) error
	Del(ctx context.Context, sessionID string) error
}

// tokenRepo maps backend misses to ErrTokenNotFound.
type tokenRepo struct {
	backend tokenBackend
}

func (r *tokenRepo) Get(ctx context.Context, sessionID string) (string, error) {
	token, ok, err := r.backend.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (r *tokenRepo) Set(ctx context.Context, sessionID string, token string, ttl time.Duration) error {
	return r.backend.Set(ctx, sessionID, token, ttl)
}

func (r *tokenRepo) Del(ctx context.Context, sessionID string) error {
	return r.backend.Del(ctx, sessionID)
}
