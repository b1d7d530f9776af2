// Package model provides domain models for the web server.
package model

// CacheStatus tells whether a file was served from the cache.
type CacheStatus string

const (
	// CacheHit means the payload came from the LRU cache.
	CacheHit CacheStatus = "HIT"
	// CacheMiss means the payload was loaded from disk and then cached.
	CacheMiss CacheStatus = "MISS"
	// CacheBypass means the payload never touched the cache (404 page, built-ins).
	CacheBypass CacheStatus = "BYPASS"
)

// File is a resource loaded from a file store.
type File struct {
	// Path is the resolved on-disk path; it doubles as the cache key.
	Path        string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (f *File) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Data)
}

// FileResult is a file ready to be written to the client.
type FileResult struct {
	File
	CacheStatus CacheStatus
}
