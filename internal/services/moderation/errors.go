package moderation

import "errors"

// Service errors
var (
	ErrProfileNotFound = errors.New("profile not found")
)
