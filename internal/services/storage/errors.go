package storage

import "errors"

// Service errors
var (
	ErrMissingFile     = errors.New("no file provided")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrUploadFailed    = errors.New("upload failed")
)
