// AngelaMos | 2026
// upload.go

package product

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type ImageStore interface {
	// Save persists an image and returns the public file name.
	Save(ctx context.Context, upload ImageUpload) (string, error)
}

// DiskImageStore writes images under a directory served at /uploads.
type DiskImageStore struct {
	dir     string
	maxSize int64
}

func NewDiskImageStore(dir string, maxSize int64) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskImageStore{dir: dir, maxSize: maxSize}, nil
}

func (s *DiskImageStore) MaxSize() int64 {
	return s.maxSize
}

func (s *DiskImageStore) Save(_ context.Context, upload ImageUpload) (string, error) {
	if len(upload.Content) == 0 {
		return "", core.ValidationError("image is empty")
	}
	if int64(len(upload.Content)) > s.maxSize {
		return "", core.ValidationError(
			fmt.Sprintf("image must be at most %d bytes", s.maxSize),
		)
	}

	mt := mimetype.Detect(upload.Content)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", core.ValidationError("only image uploads are allowed")
	}

	name := fmt.Sprintf("%s%s", uuid.New().String(), mt.Extension())
	path := filepath.Join(s.dir, name)

	//nolint:gosec // G306: uploaded images are served publicly
	if err := os.WriteFile(path, upload.Content, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return name, nil
}

// ImageURL builds the public link of a stored image.
func ImageURL(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + "/uploads/" + name
}
