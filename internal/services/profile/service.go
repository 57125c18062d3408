package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rishta/internal/models"
	"rishta/internal/repositories"
	"rishta/internal/repositories/cache"
)

// Document kinds accepted by AttachDocument.
const (
	DocumentProfilePicture = "profile_picture"
	DocumentIDDocument     = "id_document"
	DocumentSelfie         = "selfie"
)

// UpdateInput carries the owner-editable profile fields. Moderation flags
// and document URLs are deliberately not here; those go through the
// moderation service and AttachDocument respectively.
type UpdateInput struct {
	FullName      string     `json:"full_name"`
	Gender        string     `json:"gender"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	City          string     `json:"city"`
	Education     string     `json:"education"`
	Profession    string     `json:"profession"`
	MaritalStatus string     `json:"marital_status"`
	Bio           string     `json:"bio"`
	Requirements  string     `json:"requirements"`
	Phone         string     `json:"phone"`
	Whatsapp      string     `json:"whatsapp"`
}

type Service interface {
	// Create makes the minimal profile row at registration time.
	Create(ctx context.Context, userID uint, fullName, gender string) (*models.Profile, error)

	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)

	// Update applies owner edits to the non-moderation fields.
	Update(ctx context.Context, userID uint, input UpdateInput) (*models.Profile, error)

	// AttachDocument records an uploaded document URL on the profile.
	AttachDocument(ctx context.Context, userID uint, kind, url string) (*models.Profile, error)
}

type service struct {
	repo  repositories.ProfileRepository
	cache *cache.CacheService
}

// NewService creates a new profile service
func NewService(repo repositories.ProfileRepository, cacheSvc *cache.CacheService) Service {
	if repo == nil {
		panic("profile repository is required")
	}
	return &service{
		repo:  repo,
		cache: cacheSvc,
	}
}

func (s *service) Create(ctx context.Context, userID uint, fullName, gender string) (*models.Profile, error) {
	p := &models.Profile{
		UserID:   userID,
		FullName: fullName,
		Gender:   gender,
	}
	if err := s.repo.Create(p); err != nil {
		if errors.Is(err, repositories.ErrDuplicateProfile) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

func (s *service) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	p, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, userID uint, input UpdateInput) (*models.Profile, error) {
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.FullName = input.FullName
	p.Gender = input.Gender
	p.DateOfBirth = input.DateOfBirth
	p.City = input.City
	p.Education = input.Education
	p.Profession = input.Profession
	p.MaritalStatus = input.MaritalStatus
	p.Bio = input.Bio
	p.Requirements = input.Requirements
	p.Phone = input.Phone
	p.Whatsapp = input.Whatsapp

	if err := s.repo.Update(p); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.invalidateDirectory(ctx)
	return p, nil
}

func (s *service) AttachDocument(ctx context.Context, userID uint, kind, url string) (*models.Profile, error) {
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch kind {
	case DocumentProfilePicture:
		p.ProfilePictureURL = url
	case DocumentIDDocument:
		p.IDDocumentURL = url
		// New identity evidence needs a fresh admin review.
		p.IsVerified = false
	case DocumentSelfie:
		p.SelfieURL = url
		p.IsVerified = false
	default:
		return nil, ErrUnknownDocument
	}

	if err := s.repo.Update(p); err != nil {
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}

	if kind == DocumentProfilePicture {
		s.invalidateDirectory(ctx)
	}
	return p, nil
}

func (s *service) invalidateDirectory(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDirectory(ctx); err != nil {
		log.Printf("Warning: failed to invalidate directory cache: %v", err)
	}
}
