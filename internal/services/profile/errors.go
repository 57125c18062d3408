package profile

import "errors"

// Service errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrUnknownDocument = errors.New("unknown document kind")
)
