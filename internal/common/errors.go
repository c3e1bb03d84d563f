package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound = errors.New("resource not found")

	// Trainer errors
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrNotATrainer     = errors.New("user does not have the trainer role")

	// Blockout errors
	ErrBlockoutNotFound = errors.New("blockout not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
