package quota

import "errors"

// Service errors
var (
	ErrNoActivePackage  = errors.New("no active package")
	ErrPackageNotFound  = errors.New("package not found")
	ErrPackageInactive  = errors.New("package is not available for purchase")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrAlreadyReviewed  = errors.New("purchase has already been reviewed")
)
