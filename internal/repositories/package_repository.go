package repositories

import (
	"errors"
	"fmt"
	"time"

	"rishta/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPackageNotFound     = errors.New("package not found")
	ErrUserPackageNotFound = errors.New("user package not found")
	ErrNoUsablePackage     = errors.New("no usable package")
)

// PackageRepository covers the package catalog and the purchased-package
// ledger. The quota decrement itself lives in ProposalRepository because it
// must share a transaction with the proposal insert.
type PackageRepository interface {
	// Catalog
	CreatePackage(pkg *models.Package) error
	GetPackage(id uint) (*models.Package, error)
	ListActivePackages() ([]*models.Package, error)
	ListAllPackages() ([]*models.Package, error)
	UpdatePackage(pkg *models.Package) error

	// Ledger
	CreateUserPackage(up *models.UserPackage) error
	GetUserPackage(id uint) (*models.UserPackage, error)
	// GetActiveUserPackage returns the newest approved, unexpired purchase
	// with remaining quota.
	GetActiveUserPackage(userID uint) (*models.UserPackage, error)
	ListUserPackages(userID uint) ([]*models.UserPackage, error)
	ListPendingUserPackages(offset, limit int) ([]*models.UserPackage, int64, error)
	// UpdatePaymentStatus moves a pending row to approved or rejected. It
	// refuses to touch rows that already left pending.
	UpdatePaymentStatus(id uint, status string) (int64, error)
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) CreatePackage(pkg *models.Package) error {
	if err := r.db.Create(pkg).Error; err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *packageRepository) GetPackage(id uint) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.First(&pkg, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

func (r *packageRepository) ListActivePackages() ([]*models.Package, error) {
	var packages []*models.Package
	err := r.db.Where("is_active = ?", true).Order("price_pkr ASC").Find(&packages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (r *packageRepository) ListAllPackages() ([]*models.Package, error) {
	var packages []*models.Package
	err := r.db.Order("price_pkr ASC").Find(&packages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (r *packageRepository) UpdatePackage(pkg *models.Package) error {
	if err := r.db.Save(pkg).Error; err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	return nil
}

func (r *packageRepository) CreateUserPackage(up *models.UserPackage) error {
	if err := r.db.Create(up).Error; err != nil {
		return fmt.Errorf("failed to create user package: %w", err)
	}
	return nil
}

func (r *packageRepository) GetUserPackage(id uint) (*models.UserPackage, error) {
	var up models.UserPackage
	if err := r.db.Preload("Package").First(&up, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserPackageNotFound
		}
		return nil, fmt.Errorf("failed to get user package: %w", err)
	}
	return &up, nil
}

func (r *packageRepository) GetActiveUserPackage(userID uint) (*models.UserPackage, error) {
	var up models.UserPackage
	err := r.db.
		Where("user_id = ? AND payment_status = ? AND expires_at > ? AND proposals_remaining > 0",
			userID, models.PaymentStatusApproved, time.Now()).
		Order("created_at DESC").
		First(&up).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoUsablePackage
		}
		return nil, fmt.Errorf("failed to get active user package: %w", err)
	}
	return &up, nil
}

func (r *packageRepository) ListUserPackages(userID uint) ([]*models.UserPackage, error) {
	var ups []*models.UserPackage
	err := r.db.Preload("Package").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user packages: %w", err)
	}
	return ups, nil
}

func (r *packageRepository) ListPendingUserPackages(offset, limit int) ([]*models.UserPackage, int64, error) {
	base := r.db.Model(&models.UserPackage{}).Where("payment_status = ?", models.PaymentStatusPending)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pending payments: %w", err)
	}

	var ups []*models.UserPackage
	err := r.db.Preload("Package").
		Where("payment_status = ?", models.PaymentStatusPending).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ups).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending payments: %w", err)
	}
	return ups, total, nil
}

func (r *packageRepository) UpdatePaymentStatus(id uint, status string) (int64, error) {
	result := r.db.Model(&models.UserPackage{}).
		Where("id = ? AND payment_status = ?", id, models.PaymentStatusPending).
		Update("payment_status", status)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	return result.RowsAffected, nil
}
