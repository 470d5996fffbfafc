// Package images stores uploaded image files on disk.
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// protected filenames shipped with the app rather than uploaded.
var protected = map[string]bool{
	"default-avatar.png": true,
}

// Store writes uploaded images under a single directory with
// generated names, so original filenames never reach the filesystem.
type Store struct {
	dir string
}

// NewStore creates an image store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the upload to disk under a generated name, keeping the
// original extension. Returns the stored filename.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	filename := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			return "", fmt.Errorf("writing image: %w (also failed to close: %v)", err, cerr)
		}
		return "", fmt.Errorf("writing image: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing image file: %w", err)
	}

	return filename, nil
}

// Remove deletes a stored file. Protected defaults and already-missing
// files are left alone without error.
func (s *Store) Remove(filename string) error {
	if filename == "" || protected[filename] {
		return nil
	}

	// Refuse anything that escapes the store directory.
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid image filename: %s", filename)
	}

	err := os.Remove(filepath.Join(s.dir, filename))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("removing image %s: %w", filename, err)
	}
	return nil
}
