// Package storage manages the on-disk upload directory for listing images.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"inmobiliaria_api/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type ImageStore struct {
	dir      string
	maxBytes int64
}

func NewImageStore(dir string, maxBytes int64) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewImageStore: %w", err)
	}
	return &ImageStore{dir: dir, maxBytes: maxBytes}, nil
}

func (s *ImageStore) Dir() string { return s.dir }

// Save writes an uploaded image under a slugified, collision-free name and
// returns the stored filename. Non-image extensions and oversized payloads
// are rejected as validation errors.
func (s *ImageStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q: %w", ext, common.ErrValidation)
	}

	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	name := slug.Make(base)
	if name == "" {
		name = "imagen"
	}
	filename := fmt.Sprintf("%s-%s%s", name, uuid.NewString()[:8], ext)

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("storage.Save create: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("storage.Save copy: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(f.Name())
		return "", fmt.Errorf("image exceeds the %d byte limit: %w", s.maxBytes, common.ErrValidation)
	}
	return filename, nil
}
