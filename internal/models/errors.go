package models

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned when storage has not been created yet.
	ErrNotInitialized = errors.New("storage not initialized")
)
