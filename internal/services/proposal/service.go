package proposal

import (
	"context"
	"errors"
	"fmt"

	"rishta/internal/models"
	"rishta/internal/repositories"
)

type service struct {
	repo     repositories.ProposalRepository
	profiles repositories.ProfileRepository
}

// NewService creates a new proposal service
func NewService(repo repositories.ProposalRepository, profiles repositories.ProfileRepository) Service {
	if repo == nil {
		panic("proposal repository is required")
	}
	if profiles == nil {
		panic("profile repository is required")
	}
	return &service{
		repo:     repo,
		profiles: profiles,
	}
}

func (s *service) Send(ctx context.Context, senderID, receiverID uint) (*SendResult, error) {
	if senderID == receiverID {
		return nil, ErrSelfProposal
	}

	receiver, err := s.profiles.GetByUserID(receiverID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrReceiverNotEligible
		}
		return nil, fmt.Errorf("failed to load receiver profile: %w", err)
	}
	if !receiver.IsApproved || receiver.IsBlocked {
		return nil, ErrReceiverNotEligible
	}

	p := &models.Proposal{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.ProposalStatusPending,
	}

	// The repository couples the quota decrement and the insert in one
	// transaction; there is intentionally no quota pre-check here.
	remaining, err := s.repo.CreateWithQuota(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrQuotaExhausted):
			return nil, ErrQuotaExhausted
		case errors.Is(err, repositories.ErrDuplicatePair):
			return nil, ErrProposalExists
		}
		return nil, fmt.Errorf("failed to send proposal: %w", err)
	}

	return &SendResult{Proposal: p, Remaining: remaining}, nil
}

func (s *service) Respond(ctx context.Context, receiverID, senderID uint, accept bool) (*models.Proposal, error) {
	p, err := s.repo.GetByPair(ctx, receiverID, senderID)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to load proposal: %w", err)
	}

	if p.ReceiverID != receiverID {
		return nil, ErrNotReceiver
	}
	if p.Resolved() {
		return nil, ErrAlreadyResolved
	}

	status := models.ProposalStatusRejected
	if accept {
		status = models.ProposalStatusAccepted
	}

	rows, err := s.repo.ResolvePending(ctx, p.PairLow, p.PairHigh, receiverID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve proposal: %w", err)
	}
	if rows == 0 {
		// Lost a race with another response; the row left pending between
		// our read and the update.
		return nil, ErrAlreadyResolved
	}

	p.Status = status
	return p, nil
}

func (s *service) StatusForPair(ctx context.Context, a, b uint) (*PairStatus, error) {
	p, err := s.repo.GetByPair(ctx, a, b)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return &PairStatus{Status: models.ProposalStatusNone}, nil
		}
		return nil, fmt.Errorf("failed to get pair status: %w", err)
	}
	return &PairStatus{Status: p.Status, SenderID: p.SenderID}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]*models.Proposal, error) {
	return s.repo.ListForUser(ctx, userID)
}
