package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrDuplicate          = errors.New("duplicate record")
	ErrInvalidState       = errors.New("invalid state transition")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrValidation         = errors.New("validation failed")
)
