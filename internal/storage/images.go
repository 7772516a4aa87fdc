package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// RecipeImagePath derives the stored path for an uploaded recipe image. The
// extension comes from the original filename, the basename from newID, so the
// result is deterministic given the ID source.
func RecipeImagePath(newID func() string, filename string) string {
	ext := filepath.Ext(filename)
	return path.Join("uploads", "recipe", newID()+ext)
}

// NewImageID is the default ID source for RecipeImagePath
func NewImageID() string {
	return uuid.NewString()
}

// ImageStore persists uploaded files under a root directory. Stored paths are
// virtual (relative) and never escape the root.
type ImageStore struct {
	Root string
}

// NewImageStore creates a store rooted at dir
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{Root: dir}
}

// Save writes the reader's content to relPath under the root, creating parent
// directories as needed
func (s *ImageStore) Save(relPath string, r io.Reader) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.Close()
}

// Remove deletes a stored file. A missing file or empty path is not an error,
// removal runs as best-effort cleanup after record updates.
func (s *ImageStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *ImageStore) resolve(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(clean) || clean == ".." || len(clean) >= 3 && clean[:3] == ".."+string(filepath.Separator) {
		return "", fmt.Errorf("invalid stored path: %s", relPath)
	}
	return filepath.Join(s.Root, clean), nil
}
