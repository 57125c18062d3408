// Package contact implements the contact disclosure gate: the only path
// through which one user's phone and WhatsApp numbers may be read by
// another. Authorization is an accepted proposal between the two users,
// re-verified against the database on every call; the result is never
// cached because proposal status can change between reads.
package contact

import (
	"context"
	"errors"
	"fmt"

	"rishta/internal/models"
	"rishta/internal/repositories"
)

// Info carries the disclosed contact fields.
type Info struct {
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
}

type Service interface {
	// ContactIfAccepted returns the target's contact fields iff an accepted
	// proposal exists between viewer and target and the target is not
	// blocked. Any other state yields ErrNotDisclosed.
	ContactIfAccepted(ctx context.Context, viewerID, targetUserID uint) (*Info, error)
}

type service struct {
	proposals repositories.ProposalRepository
	profiles  repositories.ProfileRepository
}

// NewService creates a new contact disclosure service
func NewService(proposals repositories.ProposalRepository, profiles repositories.ProfileRepository) Service {
	if proposals == nil {
		panic("proposal repository is required")
	}
	if profiles == nil {
		panic("profile repository is required")
	}
	return &service{
		proposals: proposals,
		profiles:  profiles,
	}
}

func (s *service) ContactIfAccepted(ctx context.Context, viewerID, targetUserID uint) (*Info, error) {
	if viewerID == targetUserID {
		return nil, ErrNotDisclosed
	}

	p, err := s.proposals.GetByPair(ctx, viewerID, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return nil, ErrNotDisclosed
		}
		return nil, fmt.Errorf("failed to check proposal status: %w", err)
	}

	// The pair lookup is symmetric, so also confirm the viewer really is a
	// party to the row before disclosing anything.
	if p.Status != models.ProposalStatusAccepted || !p.HasParty(viewerID) {
		return nil, ErrNotDisclosed
	}

	target, err := s.profiles.GetByUserID(targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrNotDisclosed
		}
		return nil, fmt.Errorf("failed to load target profile: %w", err)
	}

	// A block cuts off disclosure even for previously accepted proposals.
	if target.IsBlocked {
		return nil, ErrNotDisclosed
	}

	return &Info{Phone: target.Phone, Whatsapp: target.Whatsapp}, nil
}
