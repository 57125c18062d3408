package repositories

import (
	"context"
	"errors"

	"rishta/internal/models"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrDuplicatePair    = errors.New("proposal already exists for pair")
	ErrQuotaExhausted   = errors.New("no active package with remaining proposals")
)

// ProposalRepository defines the interface for proposal database operations.
//
// CreateWithQuota is the only write path that creates proposals: it couples
// the quota decrement and the row insert in one database transaction so the
// two effects commit or roll back together. Callers must never implement a
// check-then-act version of it.
type ProposalRepository interface {
	// CreateWithQuota atomically decrements the sender's active package by
	// one and inserts the pending proposal. Returns the remaining quota.
	// Fails with ErrQuotaExhausted when no package row satisfies
	// approved/unexpired/remaining>0, and with ErrDuplicatePair when the
	// unordered pair already has a proposal in any status.
	CreateWithQuota(ctx context.Context, proposal *models.Proposal) (remaining int, err error)

	// GetByPair looks a proposal up by its normalized pair key.
	GetByPair(ctx context.Context, a, b uint) (*models.Proposal, error)

	// ResolvePending moves the pending proposal for the pair to the given
	// terminal status, guarded on the exact receiver. Returns the number of
	// rows changed; zero means the row was already resolved (or the guard
	// did not match).
	ResolvePending(ctx context.Context, pairLow, pairHigh, receiverID uint, status string) (int64, error)

	// ListForUser returns every proposal the user is a party to, newest
	// first.
	ListForUser(ctx context.Context, userID uint) ([]*models.Proposal, error)
}
