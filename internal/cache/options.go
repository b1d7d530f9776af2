package cache

import "strings"

// DuplicatePolicy decides what Put does with a key that is already cached.
type DuplicatePolicy int

const (
	// ReplaceDuplicates releases the old entry and installs the new one as most recently used.
	ReplaceDuplicates DuplicatePolicy = iota
	// RejectDuplicates fails the Put with ErrDuplicateKey and leaves the cache untouched.
	RejectDuplicates
)

// String returns the configuration name of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case ReplaceDuplicates:
		return "replace"
	case RejectDuplicates:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy maps a configuration value to a policy, ignoring case
// and surrounding space. An empty value selects ReplaceDuplicates. Any other
// unrecognised value also yields ReplaceDuplicates, with ok set to false.
func ParseDuplicatePolicy(s string) (p DuplicatePolicy, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject":
		return RejectDuplicates, true
	case "replace", "":
		return ReplaceDuplicates, true
	default:
		return ReplaceDuplicates, false
	}
}

// ReleaseReason tells a release hook why an entry left the cache.
type ReleaseReason int

const (
	// ReleaseEvicted means the entry was the least recently used one when a Put needed room.
	ReleaseEvicted ReleaseReason = iota
	// ReleaseReplaced means a Put for the same key superseded the entry.
	ReleaseReplaced
	// ReleaseDestroyed means the cache was torn down.
	ReleaseDestroyed
)

// String returns a metrics-friendly label for the reason.
func (r ReleaseReason) String() string {
	switch r {
	case ReleaseEvicted:
		return "evicted"
	case ReleaseReplaced:
		return "replaced"
	case ReleaseDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// ReleaseHook is called exactly once for every entry the cache releases.
// It runs after the cache lock is dropped, so it may call back into the cache.
type ReleaseHook func(key string, reason ReleaseReason)

// Option configures an LRU.
type Option func(*LRU)

// WithDuplicatePolicy sets how Put treats keys that are already cached.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *LRU) {
		c.policy = p
	}
}

// WithMaxEntryBytes caps the payload size of a single entry.
// Zero or a negative value disables the cap.
func WithMaxEntryBytes(n int) Option {
	return func(c *LRU) {
		c.maxEntryBytes = n
	}
}

// WithReleaseHook registers a callback for released entries.
func WithReleaseHook(fn ReleaseHook) Option {
	return func(c *LRU) {
		c.onRelease = fn
	}
}
