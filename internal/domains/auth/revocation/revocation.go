// Package revocation remembers signed out token ids until the tokens would have expired anyway.
package revocation

//go:generate go run go.uber.org/mock/mockgen -source=./revocation.go -destination=./mocks/revocation_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"coating/shared"
	"coating/shared/cache"
	"coating/shared/constant"
)

const (
	cachePrefix = "revoked"
	marker      = "1"
)

type Store interface {
	Revoke(ctx context.Context, tokenID string, ttlSeconds int) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Claim(ctx context.Context, tokenID string, ttlSeconds int) (bool, error)
}

type store struct {
	cache cache.RedisCache
}

func New(cache cache.RedisCache) Store {
	return &store{cache: cache}
}

// Revoke is a no-op for tokens that are already expired.
func (s *store) Revoke(ctx context.Context, tokenID string, ttlSeconds int) error {
	if tokenID == constant.Empty || ttlSeconds <= 0 {
		return nil
	}

	if err := s.cache.Save(ctx, shared.BuildCacheKey(cachePrefix, tokenID), marker, ttlSeconds); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var value string

	err := s.cache.Get(ctx, shared.BuildCacheKey(cachePrefix, tokenID), &value)
	if errors.Is(err, cache.Nil) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return true, nil
}

// Claim revokes the token and reports whether this call was the one that did it.
// Tokens that are expired or already revoked are never claimed.
func (s *store) Claim(ctx context.Context, tokenID string, ttlSeconds int) (bool, error) {
	if tokenID == constant.Empty || ttlSeconds <= 0 {
		return false, nil
	}

	claimed, err := s.cache.SaveIfAbsent(ctx, shared.BuildCacheKey(cachePrefix, tokenID), marker, ttlSeconds)
	if err != nil {
		return false, fmt.Errorf("failed to claim token: %w", err)
	}

	return claimed, nil
}
