package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 3 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 characters")
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingFields      = errors.New("all required fields must be provided")
)
