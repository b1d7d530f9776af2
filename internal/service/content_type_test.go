//go:build !integration

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		data     []byte
		expected string
	}{
		{name: "html", file: "/srv/index.html", expected: "text/html"},
		{name: "htm", file: "page.htm", expected: "text/html"},
		{name: "jpeg", file: "cat.jpeg", expected: "image/jpg"},
		{name: "jpg", file: "cat.jpg", expected: "image/jpg"},
		{name: "css", file: "style.css", expected: "text/css"},
		{name: "js", file: "app.js", expected: "application/javascript"},
		{name: "json", file: "data.json", expected: "application/json"},
		{name: "txt", file: "notes.txt", expected: "text/plain"},
		{name: "gif", file: "a.gif", expected: "image/gif"},
		{name: "png", file: "a.png", expected: "image/png"},
		{name: "extension is case insensitive", file: "INDEX.HTML", expected: "text/html"},
		{name: "extension wins over content", file: "a.txt", data: []byte("\x89PNG\r\n\x1a\n"), expected: "text/plain"},
		{name: "unknown extension without data", file: "blob.bin", expected: DefaultContentType},
		{name: "no extension without data", file: "/srv/notes/data", expected: DefaultContentType},
		{name: "sniffs png", file: "/srv/img/data", data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), expected: "image/png"},
		{name: "sniffs pdf", file: "report", data: []byte("%PDF-1.7\n"), expected: "application/pdf"},
		{name: "sniffs plain text", file: "README", data: []byte("hello world\n"), expected: "text/plain; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContentTypeFor(tt.file, tt.data))
		})
	}
}
