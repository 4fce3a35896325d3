package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)
