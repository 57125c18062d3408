package proposal

import (
	"context"

	"rishta/internal/models"
)

// Service defines the proposal state machine: none -> pending ->
// accepted|rejected, one proposal per unordered pair of users.
type Service interface {
	// Send creates a pending proposal from sender to receiver and consumes
	// one unit of the sender's quota. Both effects are atomic.
	Send(ctx context.Context, senderID, receiverID uint) (*SendResult, error)

	// Respond resolves the pending proposal from sender, as the receiver.
	// Transitions are one-way; a second response fails.
	Respond(ctx context.Context, receiverID, senderID uint, accept bool) (*models.Proposal, error)

	// StatusForPair reports the proposal state between two users.
	StatusForPair(ctx context.Context, a, b uint) (*PairStatus, error)

	// ListForUser returns all proposals the user is a party to.
	ListForUser(ctx context.Context, userID uint) ([]*models.Proposal, error)
}
