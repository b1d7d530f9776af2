package service

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultContentType is used when neither the extension nor the content
// identify the file.
const DefaultContentType = "application/octet-stream"

var extensionTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".jpeg": "image/jpg",
	".jpg":  "image/jpg",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".txt":  "text/plain",
	".gif":  "image/gif",
	".png":  "image/png",
}

// ContentTypeFor picks the MIME type served for a file. Known extensions
// win; anything else is sniffed from data.
func ContentTypeFor(name string, data []byte) string {
	if ct, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	if len(data) == 0 {
		return DefaultContentType
	}
	return mimetype.Detect(data).String()
}
