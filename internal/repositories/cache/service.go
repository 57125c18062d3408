package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rishta/internal/models"

	"github.com/redis/go-redis/v9"
)

// DirectoryTTL keeps browse results fresh enough that moderation changes
// show up quickly even if an invalidation is missed.
const DirectoryTTL = 2 * time.Minute

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

func (s *CacheService) DeleteByPattern(ctx context.Context, pattern string) error {
	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return s.client.Del(ctx, keys...).Err()
	}
	return nil
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
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

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("user not found in cache")
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	user, err := s.GetUser(ctx, s.GenerateKey("user", "id", userID))
	if err != nil {
		return err
	}

	return s.Delete(ctx,
		s.GenerateKey("user", "id", userID),
		s.GenerateKey("user", "email", user.Email),
	)
}

// DirectoryPage is the cached unit for browse results.
type DirectoryPage struct {
	Profiles []models.PublicProfile `json:"profiles"`
	Total    int64                  `json:"total"`
}

// Directory caching. Pages are cached per viewer and page under a shared
// prefix so a single pattern delete drops the whole directory after any
// profile or moderation write. Proposal and contact lookups are never
// cached here; those must hit the database on every read.
func (s *CacheService) CacheDirectoryPage(ctx context.Context, viewerID uint, page int, dp *DirectoryPage) error {
	key := s.directoryKey(viewerID, page)
	return s.SetWithTTL(ctx, key, dp, DirectoryTTL)
}

func (s *CacheService) GetDirectoryPage(ctx context.Context, viewerID uint, page int) (*DirectoryPage, bool, error) {
	var dp DirectoryPage
	found, err := s.Get(ctx, s.directoryKey(viewerID, page), &dp)
	if err != nil || !found {
		return nil, false, err
	}
	return &dp, true, nil
}

func (s *CacheService) InvalidateDirectory(ctx context.Context) error {
	return s.DeleteByPattern(ctx, "directory:*")
}

func (s *CacheService) directoryKey(viewerID uint, page int) string {
	return fmt.Sprintf("directory:%d:%d", viewerID, page)
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// PoolStats exposes the underlying connection pool statistics.
func (s *CacheService) PoolStats() *redis.PoolStats {
	return s.client.PoolStats()
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
