package services

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrSlugExists      = errors.New("slug already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrAdminDisabled   = errors.New("admin is disabled")
	ErrInvalidPassword = errors.New("invalid password")
)
