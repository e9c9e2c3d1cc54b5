package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	apperrors "github.com/jxnhiro/blog-api/internal/errors"
)

// URLPrefix is the path prefix under which stored images are served.
const URLPrefix = "images"

var allowedExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// ImageStore persists uploaded images and removes replaced or orphaned ones.
type ImageStore interface {
	Store(r io.Reader) (string, error)
	Delete(imagePath string) error
}

// DiskStore is a filesystem-backed ImageStore.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the storage directory if needed and returns a DiskStore.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Store writes the image under a globally unique name and returns its serving
// path. Only png and jpeg content is accepted.
func (s *DiskStore) Store(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", apperrors.New(apperrors.Internal, "failed to read uploaded image")
	}

	ext, ok := allowedExtensions[mimetype.Detect(data).String()]
	if !ok {
		return "", apperrors.New(apperrors.Validation, "only png and jpeg images are accepted")
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", apperrors.New(apperrors.Internal, "failed to store image")
	}

	return path.Join(URLPrefix, name), nil
}

// Delete removes a stored image by its serving path.
func (s *DiskStore) Delete(imagePath string) error {
	// Base guards against traversal via a stored path.
	name := filepath.Base(filepath.FromSlash(imagePath))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return apperrors.New(apperrors.NotFound, "cannot delete image, as image is not found")
		}
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
