package proposal

import "rishta/internal/models"

// SendResult reports a successful send along with the sender's remaining
// quota, which the UI surfaces ("N proposals remaining").
type SendResult struct {
	Proposal  *models.Proposal `json:"proposal"`
	Remaining int              `json:"remaining"`
}

// PairStatus describes the proposal state between two users. Status is
// "none" when no row exists; otherwise SenderID says which side sent the
// proposal, which decides who may respond and whether the UI renders
// "Sent" or "Received".
type PairStatus struct {
	Status   string `json:"status"`
	SenderID uint   `json:"sender_id,omitempty"`
}
