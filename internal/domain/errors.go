package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrGeneration      = errors.New("text generation failed")
	ErrNoActiveSession = errors.New("no active walkthrough session")
)
