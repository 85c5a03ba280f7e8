package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage saves uploaded files under a base path. Event posters land
// here and are served back as static files.
type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// SaveImage writes an uploaded image under a random name and returns
// the stored filename. The extension is validated against an allowlist.
func (s *Storage) SaveImage(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(s.basePath, filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}

	return filename, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *Storage) Delete(filename string) error {
	// Reject anything that could escape the base directory.
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		return fmt.Errorf("invalid filename: %q", filename)
	}
	err := os.Remove(filepath.Join(s.basePath, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the absolute path of a stored file.
func (s *Storage) Path(filename string) string {
	return filepath.Join(s.basePath, filename)
}

// BasePath returns the storage root, for static file serving.
func (s *Storage) BasePath() string {
	return s.basePath
}
