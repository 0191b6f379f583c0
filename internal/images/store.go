// Package images validates and stores uploaded entry photos on disk.
package images

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxSize is the upload cap for a single image.
const MaxSize = 10 << 20 // 10MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrTooLarge    = errors.New("image file size cannot exceed 10MB")
	ErrInvalidType = errors.New("invalid file type. Allowed types: jpg, jpeg, png, gif, webp")
)

// Store writes uploaded images under a root directory, one dated
// subdirectory per day.
type Store struct {
	Root string
}

// NewStore creates the uploads root if needed.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Store{Root: root}, nil
}

// Validate checks the upload's extension and size without writing anything.
func Validate(file *multipart.FileHeader) error {
	if file.Size > MaxSize {
		return ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return ErrInvalidType
	}
	return nil
}

// Save validates the upload and writes it to <root>/YYYY/MM/DD/<uuid><ext>,
// returning the path relative to the root. The random name avoids
// collisions between caregivers uploading at the same moment.
func (s *Store) Save(file *multipart.FileHeader, now time.Time) (string, error) {
	if err := Validate(file); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	rel := filepath.Join(now.Format("2006/01/02"), uuid.New().String()+ext)
	dst := filepath.Join(s.Root, rel)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return rel, nil
}

// Remove deletes a stored image by its relative path. Missing files are
// not an error; delete must stay idempotent.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
