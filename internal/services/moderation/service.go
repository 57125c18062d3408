// Package moderation implements the admin-only profile mutations. Each
// operation flips a single moderation flag and cascades nothing: blocking a
// profile hides it from the directory and cuts off contact disclosure, but
// leaves existing proposal rows untouched. Payment review lives in the
// quota service.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rishta/internal/repositories"
	"rishta/internal/repositories/cache"
)

type Service interface {
	ApproveProfile(ctx context.Context, profileID uint) error
	SetBlocked(ctx context.Context, profileID uint, blocked bool) error
	SetVerified(ctx context.Context, profileID uint, verified bool) error
	SetFeatured(ctx context.Context, profileID uint, featured bool) error
}

type service struct {
	profiles repositories.ProfileRepository
	cache    *cache.CacheService
}

// NewService creates a new moderation service
func NewService(profiles repositories.ProfileRepository, cacheSvc *cache.CacheService) Service {
	if profiles == nil {
		panic("profile repository is required")
	}
	return &service{
		profiles: profiles,
		cache:    cacheSvc,
	}
}

func (s *service) ApproveProfile(ctx context.Context, profileID uint) error {
	return s.flip(ctx, profileID, "is_approved", true)
}

func (s *service) SetBlocked(ctx context.Context, profileID uint, blocked bool) error {
	return s.flip(ctx, profileID, "is_blocked", blocked)
}

func (s *service) SetVerified(ctx context.Context, profileID uint, verified bool) error {
	return s.flip(ctx, profileID, "is_verified", verified)
}

func (s *service) SetFeatured(ctx context.Context, profileID uint, featured bool) error {
	return s.flip(ctx, profileID, "is_featured", featured)
}

func (s *service) flip(ctx context.Context, profileID uint, field string, value bool) error {
	err := s.profiles.UpdateModeration(profileID, field, value)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("moderation update failed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDirectory(ctx); err != nil {
			log.Printf("Warning: failed to invalidate directory cache: %v", err)
		}
	}
	return nil
}
