package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rishta/internal/models"

	"gorm.io/gorm"
)

type proposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) CreateWithQuota(ctx context.Context, proposal *models.Proposal) (int, error) {
	remaining := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var up models.UserPackage
		err := tx.Where("user_id = ? AND payment_status = ? AND expires_at > ? AND proposals_remaining > 0",
			proposal.SenderID, models.PaymentStatusApproved, time.Now()).
			Order("created_at DESC").
			First(&up).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrQuotaExhausted
			}
			return fmt.Errorf("failed to find active package: %w", err)
		}

		// Conditional decrement: the WHERE guard on proposals_remaining > 0
		// is the concurrency primitive, not the lookup above. Two racing
		// sends on the last unit serialize at the row; the loser matches
		// zero rows and the whole transaction rolls back, so remaining
		// never goes negative.
		result := tx.Model(&models.UserPackage{}).
			Where("id = ? AND proposals_remaining > 0", up.ID).
			UpdateColumn("proposals_remaining", gorm.Expr("proposals_remaining - 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to decrement quota: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrQuotaExhausted
		}

		if err := tx.Create(proposal).Error; err != nil {
			// The unique index on (pair_low, pair_high) is the backstop for
			// concurrent sends in either direction.
			if isUniqueViolation(err) {
				return ErrDuplicatePair
			}
			return fmt.Errorf("failed to create proposal: %w", err)
		}

		if err := tx.Select("proposals_remaining").First(&up, up.ID).Error; err != nil {
			return fmt.Errorf("failed to read remaining quota: %w", err)
		}
		remaining = up.ProposalsRemaining
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *proposalRepository) GetByPair(ctx context.Context, a, b uint) (*models.Proposal, error) {
	low, high := models.NormalizePair(a, b)

	var proposal models.Proposal
	err := r.db.WithContext(ctx).
		Where("pair_low = ? AND pair_high = ?", low, high).
		First(&proposal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return &proposal, nil
}

func (r *proposalRepository) ResolvePending(ctx context.Context, pairLow, pairHigh, receiverID uint, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Proposal{}).
		Where("pair_low = ? AND pair_high = ? AND receiver_id = ? AND status = ?",
			pairLow, pairHigh, receiverID, models.ProposalStatusPending).
		Update("status", status)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to resolve proposal: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *proposalRepository) ListForUser(ctx context.Context, userID uint) ([]*models.Proposal, error) {
	var proposals []*models.Proposal
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return proposals, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "SQLSTATE 23505")
}
