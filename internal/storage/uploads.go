package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadStore writes uploaded files under a configured directory and hands
// back the stored path. Records persist the path, never the bytes.
type UploadStore struct {
	dir       string
	publicURL string
}

// NewUploadStore ensures the upload directory exists.
func NewUploadStore(dir, publicURL string) (*UploadStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Dir returns the on-disk directory served statically.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save persists a multipart upload under a collision-free name within the
// given subdirectory ("avatars", "reports") and returns the public path.
func (s *UploadStore) Save(c *fiber.Ctx, file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext

	targetDir := filepath.Join(s.dir, subdir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload subdir: %w", err)
	}

	if err := c.SaveFile(file, filepath.Join(targetDir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return s.publicURL + "/" + subdir + "/" + name, nil
}
