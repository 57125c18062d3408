// Package payment charges cards for package purchases through Stripe. A
// successful charge lets the quota service record the purchase as approved
// immediately; a failed charge creates no ledger row at all, so the manual
// bank-transfer review queue only ever sees transfers.
package payment

import (
	"fmt"
	"log"
	"strings"

	"rishta/internal/config"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
	"github.com/stripe/stripe-go/v72/token"
)

// CardInput carries the raw card details for a one-off charge.
type CardInput struct {
	Number      string `json:"number" validate:"required"`
	ExpiryMonth string `json:"expiry_month" validate:"required"`
	ExpiryYear  string `json:"expiry_year" validate:"required"`
	CVC         string `json:"cvc" validate:"required"`
}

type Service interface {
	// ChargeCard tokenizes the card and charges amountPKR (in rupees).
	// Returns the Stripe charge ID on success.
	ChargeCard(card CardInput, amountPKR int64, description string) (string, error)
}

type service struct{}

// NewService creates a new payment service
func NewService() Service {
	stripe.Key = config.GetEnv("STRIPE_SECRET_KEY", "")
	return &service{}
}

func (s *service) ChargeCard(card CardInput, amountPKR int64, description string) (string, error) {
	if amountPKR <= 0 {
		return "", ErrInvalidAmount
	}

	tok, err := s.tokenize(card)
	if err != nil {
		return "", err
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(amountPKR * 100), // paisa
		Currency:    stripe.String("pkr"),
		Description: stripe.String(description),
	}
	params.SetSource(tok)

	ch, err := charge.New(params)
	if err != nil {
		log.Printf("Stripe charge error: %v", err)
		return "", ErrChargeFailed
	}
	return ch.ID, nil
}

func (s *service) tokenize(card CardInput) (string, error) {
	// Stripe test tokens pass straight through.
	if strings.HasPrefix(card.Number, "tok_") {
		return card.Number, nil
	}

	if !luhnValid(card.Number) {
		return "", ErrInvalidCard
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &card.Number,
			ExpMonth: &card.ExpiryMonth,
			ExpYear:  &card.ExpiryYear,
			CVC:      &card.CVC,
		},
	}
	stripeToken, err := token.New(params)
	if err != nil {
		log.Printf("Stripe tokenization error: %v", err)
		return "", fmt.Errorf("%w: tokenization failed", ErrInvalidCard)
	}
	return stripeToken.ID, nil
}

// Luhn Algorithm: used to validate card numbers before hitting Stripe
func luhnValid(cardNumber string) bool {
	if cardNumber == "" {
		return false
	}

	var sum int
	shouldDouble := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')
		if shouldDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		shouldDouble = !shouldDouble
	}
	return sum%10 == 0
}
