package cache

import "errors"

var (
	// ErrInvalidCapacity is returned by New when capacity <= 0.
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")
	// ErrDuplicateKey is returned by Put under RejectDuplicates when the key is already cached.
	ErrDuplicateKey = errors.New("cache: duplicate key")
	// ErrAllocationFailure is returned by Put when an entry cannot be stored.
	// The cache is left exactly as it was before the call.
	ErrAllocationFailure = errors.New("cache: cannot allocate entry")
	// ErrClosed is returned by Put after Destroy.
	ErrClosed = errors.New("cache: destroyed")
)
