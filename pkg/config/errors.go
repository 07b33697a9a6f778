package config

import "errors"

var (
	// ErrParsingConfig wraps failures reported by the env parser.
	ErrParsingConfig = errors.New("config: failed to parse environment")

	// ErrInvalidConfigType is returned when the target type is not a struct.
	ErrInvalidConfigType = errors.New("config: target must be a struct")

	// ErrConfigNotLoaded is returned when a parsed value is missing from the cache.
	ErrConfigNotLoaded = errors.New("config: configuration has not been loaded")

	// ErrNilPointer is returned when Load receives a nil pointer.
	ErrNilPointer = errors.New("config: nil pointer")
)
