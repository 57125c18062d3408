package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment lifecycle of a purchased package. Pending rows are created on
// purchase and moved to approved or rejected exactly once by an admin
// (card purchases are created approved).
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCard         = "card"
)

// Package is a catalog entry granting a quota of proposals. Admin-managed,
// immutable from the buyer's perspective.
type Package struct {
	gorm.Model
	Name           string `gorm:"not null" json:"name"`
	PricePKR       int64  `gorm:"not null" json:"price_pkr"`
	ProposalsCount int    `gorm:"not null" json:"proposals_count"`
	ValidityDays   int    `gorm:"default:30" json:"validity_days"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
}

// UserPackage is one purchased instance of a Package. ProposalsRemaining is
// only ever decremented inside the send-proposal transaction and never goes
// below zero.
type UserPackage struct {
	gorm.Model
	UserID             uint      `gorm:"index;not null" json:"user_id"`
	PackageID          uint      `gorm:"not null" json:"package_id"`
	Package            *Package  `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	ProposalsRemaining int       `gorm:"not null" json:"proposals_remaining"`
	PaymentStatus      string    `gorm:"default:'pending'" json:"payment_status"`
	PaymentMethod      string    `gorm:"default:'bank_transfer'" json:"payment_method"`
	PaymentProofURL    string    `json:"payment_proof_url"`
	ExpiresAt          time.Time `gorm:"not null" json:"expires_at"`
}

// Usable reports whether this purchase can cover a proposal right now.
func (up *UserPackage) Usable() bool {
	return up.PaymentStatus == PaymentStatusApproved &&
		up.ExpiresAt.After(time.Now()) &&
		up.ProposalsRemaining > 0
}
