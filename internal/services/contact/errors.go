package contact

import "errors"

// Service errors
var (
	ErrNotDisclosed = errors.New("contact details are not disclosed for this pair")
)
