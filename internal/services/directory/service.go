// Package directory serves the browse view: approved, unblocked profiles
// excluding the viewer, public fields only. Results are cached per viewer
// and page with a short TTL; profile and moderation writes invalidate the
// whole directory prefix.
package directory

import (
	"context"
	"fmt"
	"log"

	"rishta/internal/models"
	"rishta/internal/repositories"
	"rishta/internal/repositories/cache"
)

type Service interface {
	Browse(ctx context.Context, viewerID uint, page, limit int) ([]models.PublicProfile, int64, error)
}

type service struct {
	repo  repositories.ProfileRepository
	cache *cache.CacheService
}

// NewService creates a new directory service
func NewService(repo repositories.ProfileRepository, cacheSvc *cache.CacheService) Service {
	if repo == nil {
		panic("profile repository is required")
	}
	return &service{
		repo:  repo,
		cache: cacheSvc,
	}
}

func (s *service) Browse(ctx context.Context, viewerID uint, page, limit int) ([]models.PublicProfile, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	// Only the first pages are worth caching; deep pages are rare.
	cacheable := s.cache != nil && page <= 3

	if cacheable {
		if dp, found, err := s.cache.GetDirectoryPage(ctx, viewerID, page); err == nil && found {
			return dp.Profiles, dp.Total, nil
		}
	}

	profiles, total, err := s.repo.ListPublic(ctx, viewerID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to browse profiles: %w", err)
	}

	if cacheable {
		dp := &cache.DirectoryPage{Profiles: profiles, Total: total}
		if err := s.cache.CacheDirectoryPage(ctx, viewerID, page, dp); err != nil {
			log.Printf("Warning: failed to cache directory page: %v", err)
		}
	}
	return profiles, total, nil
}
