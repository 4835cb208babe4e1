package main

import "errors"

// Sentinel errors for command operations
var (
	ErrUnsupportedInput       = errors.New("unsupported input file")
	ErrGeneratorNotConfigured = errors.New("generator not configured")
	ErrCheckFailed            = errors.New("program check failed")
	ErrNoDocuments            = errors.New("no program documents found")
	ErrAlreadyInitialized     = errors.New("project already initialized")
)
