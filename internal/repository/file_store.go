package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/guttosm/lru-webserver/internal/metrics"
	"github.com/rs/zerolog/log"
)

var (
	// ErrFileNotFound is returned when the request path has no regular file behind it.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidPath is returned for request paths that would leave the root.
	ErrInvalidPath = errors.New("invalid path")
)

const (
	indexFile = "index.html"
	// saveFile is the name POSTed bodies are written to inside the request path.
	saveFile = "data"
)

// DiskStore is a FileStore rooted at a local directory.
type DiskStore struct {
	root string
}

// NewDiskStore returns a store rooted at dir. The directory is not required
// to exist yet; loads simply miss until it does.
func NewDiskStore(dir string) (*DiskStore, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", dir, err)
	}
	return &DiskStore{root: root}, nil
}

// Root returns the absolute document root.
func (s *DiskStore) Root() string {
	return s.root
}

// Resolve maps "/" and any path ending in "/" to its index.html.
func (s *DiskStore) Resolve(requestPath string) (string, error) {
	clean, err := cleanRequestPath(requestPath)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(requestPath, "/") || clean == "/" {
		clean = path.Join(clean, indexFile)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Load reads the whole file into memory.
func (s *DiskStore) Load(ctx context.Context, requestPath string) (*model.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.Resolve(requestPath)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := readRegular(target)
	switch {
	case errors.Is(err, ErrFileNotFound):
		metrics.RecordFileLoad(time.Since(start), "not_found")
		return nil, err
	case err != nil:
		metrics.RecordFileLoad(time.Since(start), "error")
		log.Error().Err(err).Str("path", target).Msg("file load failed")
		return nil, err
	}
	metrics.RecordFileLoad(time.Since(start), "ok")

	return &model.File{Path: target, Data: data}, nil
}

// Save writes data to <root><requestPath>/data, creating the directory.
func (s *DiskStore) Save(ctx context.Context, requestPath string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanRequestPath(requestPath)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, filepath.FromSlash(clean))
	target := filepath.Join(dir, saveFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		metrics.RecordFileSave("error")
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		metrics.RecordFileSave("error")
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	metrics.RecordFileSave("ok")

	return target, nil
}

// cleanRequestPath rejects ".." segments and NUL bytes instead of
// normalising them away, so "/../x" is an error rather than "/x".
func cleanRequestPath(requestPath string) (string, error) {
	if strings.IndexByte(requestPath, 0) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, requestPath)
	}
	for _, segment := range strings.FieldsFunc(requestPath, isSeparator) {
		if segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, requestPath)
		}
	}
	return path.Clean("/" + strings.ReplaceAll(requestPath, "\\", "/")), nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

func readRegular(name string) ([]byte, error) {
	info, err := os.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, ErrFileNotFound
	}

	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	return data, err
}
