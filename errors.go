package puzzlegen

import "errors"

// Common errors used throughout the puzzlegen packages
var (
	// ErrInvalidArgument is the class of every contract violation detected at a
	// construction boundary: negative argument indexes, non-hex literals,
	// atoms that would break the canonical rendering and so on.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
)
