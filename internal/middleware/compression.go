package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that accept it. Formats that are
// already compressed and the Prometheus endpoint are left alone.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedExtensions([]string{".png", ".gif", ".jpg", ".jpeg", ".zip", ".gz"}),
		gzip.WithExcludedPaths([]string{"/metrics"}),
	)
}
