// Package quota manages the purchased-package ledger: which package a user
// is currently drawing proposals from, recording purchases, and the admin
// payment review. The quota decrement itself is not here; it lives inside
// the proposal repository's send transaction so that it can never be
// applied without the matching proposal row.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rishta/internal/models"
	"rishta/internal/repositories"
)

type Service interface {
	// ActivePackage returns the purchase the user's next proposal would be
	// drawn from, or ErrNoActivePackage.
	ActivePackage(ctx context.Context, userID uint) (*models.UserPackage, error)

	// RecordPurchase creates a ledger row for a package purchase. Bank
	// transfers start pending; card purchases that already charged start
	// approved.
	RecordPurchase(ctx context.Context, userID, packageID uint, proofURL, method string, approved bool) (*models.UserPackage, error)

	// ReviewPurchase is the admin payment review: pending -> approved or
	// rejected, exactly once.
	ReviewPurchase(ctx context.Context, purchaseID uint, approve bool) error

	ListForUser(ctx context.Context, userID uint) ([]*models.UserPackage, error)
	ListPending(ctx context.Context, offset, limit int) ([]*models.UserPackage, int64, error)

	// Catalog lists the packages currently offered for sale.
	Catalog(ctx context.Context) ([]*models.Package, error)
	// GetPackage looks up a catalog entry whether or not it is still active.
	GetPackage(ctx context.Context, id uint) (*models.Package, error)
}

type service struct {
	repo repositories.PackageRepository
}

// NewService creates a new quota ledger service
func NewService(repo repositories.PackageRepository) Service {
	if repo == nil {
		panic("package repository is required")
	}
	return &service{repo: repo}
}

func (s *service) ActivePackage(ctx context.Context, userID uint) (*models.UserPackage, error) {
	up, err := s.repo.GetActiveUserPackage(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNoUsablePackage) {
			return nil, ErrNoActivePackage
		}
		return nil, fmt.Errorf("failed to get active package: %w", err)
	}
	return up, nil
}

func (s *service) RecordPurchase(ctx context.Context, userID, packageID uint, proofURL, method string, approved bool) (*models.UserPackage, error) {
	pkg, err := s.repo.GetPackage(packageID)
	if err != nil {
		if errors.Is(err, repositories.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	if !pkg.IsActive {
		return nil, ErrPackageInactive
	}

	status := models.PaymentStatusPending
	if approved {
		status = models.PaymentStatusApproved
	}

	up := &models.UserPackage{
		UserID:             userID,
		PackageID:          pkg.ID,
		ProposalsRemaining: pkg.ProposalsCount,
		PaymentStatus:      status,
		PaymentMethod:      method,
		PaymentProofURL:    proofURL,
		ExpiresAt:          time.Now().AddDate(0, 0, pkg.ValidityDays),
	}
	if err := s.repo.CreateUserPackage(up); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	up.Package = pkg
	return up, nil
}

func (s *service) ReviewPurchase(ctx context.Context, purchaseID uint, approve bool) error {
	if _, err := s.repo.GetUserPackage(purchaseID); err != nil {
		if errors.Is(err, repositories.ErrUserPackageNotFound) {
			return ErrPurchaseNotFound
		}
		return fmt.Errorf("failed to load purchase: %w", err)
	}

	status := models.PaymentStatusRejected
	if approve {
		status = models.PaymentStatusApproved
	}

	rows, err := s.repo.UpdatePaymentStatus(purchaseID, status)
	if err != nil {
		return fmt.Errorf("failed to review purchase: %w", err)
	}
	if rows == 0 {
		// The guarded update only matches pending rows.
		return ErrAlreadyReviewed
	}
	return nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]*models.UserPackage, error) {
	return s.repo.ListUserPackages(userID)
}

func (s *service) ListPending(ctx context.Context, offset, limit int) ([]*models.UserPackage, int64, error) {
	return s.repo.ListPendingUserPackages(offset, limit)
}

func (s *service) Catalog(ctx context.Context) ([]*models.Package, error) {
	return s.repo.ListActivePackages()
}

func (s *service) GetPackage(ctx context.Context, id uint) (*models.Package, error) {
	pkg, err := s.repo.GetPackage(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	return pkg, nil
}
