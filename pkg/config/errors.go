package config

import "errors"

var (
	// ErrAccountNotFound is returned when a saved account has no registry entry
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAPIID is returned for an API ID that is not a positive integer
	ErrInvalidAPIID = errors.New("API ID must be a positive integer")
)
