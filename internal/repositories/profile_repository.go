package repositories

import (
	"context"
	"errors"
	"fmt"

	"rishta/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrDuplicateProfile = errors.New("profile already exists for user")
)

// publicProfileColumns is the only column set directory reads may select.
// Phone and whatsapp are deliberately absent; they are served exclusively
// by the contact disclosure path.
const publicProfileColumns = "id, user_id, full_name, gender, date_of_birth, city, education, " +
	"profession, marital_status, bio, requirements, profile_picture_url, is_verified, is_featured"

// ProfileRepository defines the interface for profile database operations
type ProfileRepository interface {
	Create(profile *models.Profile) error
	GetByID(id uint) (*models.Profile, error)
	GetByUserID(userID uint) (*models.Profile, error)
	Update(profile *models.Profile) error

	// UpdateModeration flips a single moderation flag. Only the moderation
	// service calls this.
	UpdateModeration(profileID uint, field string, value bool) error

	// ListPublic returns directory-safe projections of eligible profiles:
	// approved, not blocked, excluding the viewer. Featured profiles sort
	// first.
	ListPublic(ctx context.Context, excludeUserID uint, offset, limit int) ([]models.PublicProfile, int64, error)

	// ListAll returns full profiles for the admin panel.
	ListAll(offset, limit int) ([]*models.Profile, int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *models.Profile) error {
	result := r.db.Create(profile)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateProfile
		}
		return fmt.Errorf("failed to create profile: %w", result.Error)
	}
	return nil
}

func (r *profileRepository) GetByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(profile *models.Profile) error {
	result := r.db.Save(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	return nil
}

func (r *profileRepository) UpdateModeration(profileID uint, field string, value bool) error {
	switch field {
	case "is_approved", "is_verified", "is_blocked", "is_featured":
	default:
		return fmt.Errorf("not a moderation field: %s", field)
	}

	result := r.db.Model(&models.Profile{}).Where("id = ?", profileID).Update(field, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", field, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ListPublic(ctx context.Context, excludeUserID uint, offset, limit int) ([]models.PublicProfile, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("is_approved = ? AND is_blocked = ? AND user_id <> ?", true, false, excludeUserID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	var profiles []models.PublicProfile
	err := base.Select(publicProfileColumns).
		Order("is_featured DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&profiles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, total, nil
}

func (r *profileRepository) ListAll(offset, limit int) ([]*models.Profile, int64, error) {
	var total int64
	if err := r.db.Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	var profiles []*models.Profile
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&profiles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, total, nil
}
