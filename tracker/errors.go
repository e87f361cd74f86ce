package tracker

import "errors"

// Usage errors returned by Record and configuration constructors. They
// indicate caller-contract violations, fail fast, and never mutate the
// applied state of a known track, so a corrected call can succeed.
var (
	ErrEmptyID          = errors.New("track id must not be blank")
	ErrInvalidPosition  = errors.New("position must have finite coordinates")
	ErrInvalidTimestamp = errors.New("timestamp must be non-negative")
	ErrStaleTimestamp   = errors.New("timestamp precedes the track's last observation")
	ErrInvalidAccuracy  = errors.New("accuracy must be positive when provided")
	ErrInvalidConfig    = errors.New("invalid tracker configuration")
)
