package payment

import "errors"

// Service errors
var (
	ErrInvalidCard   = errors.New("invalid card details")
	ErrChargeFailed  = errors.New("card charge failed")
	ErrInvalidAmount = errors.New("invalid charge amount")
)
