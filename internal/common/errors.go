package common

import "errors"

// Business logic errors
var (
	// Blog errors
	ErrBlogNotFound = errors.New("blog not found")
	ErrSlugTaken    = errors.New("slug already in use")

	// Version errors
	ErrVersionNotFound = errors.New("version not found")
	ErrVersionMismatch = errors.New("version does not belong to this blog")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	// Settings errors
	ErrSettingNotFound = errors.New("setting not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
