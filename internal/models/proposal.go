package models

import "gorm.io/gorm"

// Proposal status values. A proposal starts pending and is resolved by the
// receiver exactly once; accepted and rejected are terminal.
const (
	ProposalStatusNone     = "none"
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

// Proposal links two users. PairLow/PairHigh hold the two user IDs in
// sorted order; the composite unique index on them is what enforces the
// at-most-one-proposal-per-unordered-pair invariant, regardless of which
// side sent first.
type Proposal struct {
	gorm.Model
	SenderID   uint   `gorm:"not null" json:"sender_id"`
	ReceiverID uint   `gorm:"not null" json:"receiver_id"`
	PairLow    uint   `gorm:"not null;uniqueIndex:idx_proposal_pair,priority:1" json:"-"`
	PairHigh   uint   `gorm:"not null;uniqueIndex:idx_proposal_pair,priority:2" json:"-"`
	Status     string `gorm:"default:'pending'" json:"status"`
}

// NormalizePair returns the canonical (low, high) ordering of two user IDs.
// Every pair lookup and insert goes through this, never through the call
// direction.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	p.PairLow, p.PairHigh = NormalizePair(p.SenderID, p.ReceiverID)
	return nil
}

// HasParty reports whether the given user is either side of the proposal.
func (p *Proposal) HasParty(userID uint) bool {
	return p.SenderID == userID || p.ReceiverID == userID
}

// OtherParty returns the opposite side of the proposal for the given user.
func (p *Proposal) OtherParty(userID uint) (uint, bool) {
	switch userID {
	case p.SenderID:
		return p.ReceiverID, true
	case p.ReceiverID:
		return p.SenderID, true
	}
	return 0, false
}

// Resolved reports whether the proposal has left the pending state.
func (p *Proposal) Resolved() bool {
	return p.Status == ProposalStatusAccepted || p.Status == ProposalStatusRejected
}
