package model

import "errors"

// Repository-level errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// Service-level errors
var ErrInvalidCredentials = errors.New("wrong credentials")
