// Package cache provides a redis-backed read cache for users and
// accounts. Cache misses and cache failures are always soft; the database
// stays authoritative.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"corebank/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching

func (s *CacheService) CacheUser(ctx context.Context, user *models.AccountUser) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	keys := []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	}
	for _, key := range keys {
		if err := s.Set(ctx, key, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.AccountUser, error) {
	var user models.AccountUser
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, redis.Nil
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, user *models.AccountUser) error {
	if user == nil {
		return nil
	}
	return s.Delete(ctx,
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	)
}

// Account caching

func (s *CacheService) CacheAccount(ctx context.Context, account *models.Account) error {
	if account == nil {
		return errors.New("cannot cache nil account")
	}

	keys := []string{
		s.GenerateKey("account", "id", account.ID),
		s.GenerateKey("account", "number", account.AccountNumber),
	}
	for _, key := range keys {
		if err := s.Set(ctx, key, account); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetAccountByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	found, err := s.Get(ctx, s.GenerateKey("account", "id", id), &account)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, redis.Nil
	}
	return &account, nil
}

// InvalidateAccount drops every cached copy of the account. Called after
// any balance or status mutation.
func (s *CacheService) InvalidateAccount(ctx context.Context, account *models.Account) error {
	if account == nil {
		return nil
	}
	return s.Delete(ctx,
		s.GenerateKey("account", "id", account.ID),
		s.GenerateKey("account", "number", account.AccountNumber),
	)
}

// FlushAll clears the whole cache. Used on startup so stale entries never
// outlive a schema change.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// HealthCheck pings redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
