package models

import "errors"

// Error classes surfaced to API callers. Layers wrap these with context; match with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrPermission = errors.New("permission denied")
	ErrNotFound   = errors.New("not found")
)
