package proposal

import "errors"

// Service errors
var (
	ErrSelfProposal        = errors.New("cannot send a proposal to yourself")
	ErrQuotaExhausted      = errors.New("no active package")
	ErrProposalExists      = errors.New("a proposal already exists between these profiles")
	ErrProposalNotFound    = errors.New("proposal not found")
	ErrNotReceiver         = errors.New("only the receiver can respond to a proposal")
	ErrAlreadyResolved     = errors.New("proposal has already been resolved")
	ErrReceiverNotEligible = errors.New("receiver profile is not eligible")
)
