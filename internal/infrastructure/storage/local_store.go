package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	domainerrors "growfin.backend/internal/domain/errors"
)

// LocalStore persists uploaded documents on the local filesystem, one
// directory per owner. The returned locator is the path relative to the
// store root.
type LocalStore struct {
	root    string
	maxSize int64
}

// NewLocalStore creates a store rooted at dir, creating it if needed.
func NewLocalStore(dir string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &LocalStore{root: dir, maxSize: maxSize}, nil
}

// Save writes the document bytes and returns a locator. Filenames are
// regenerated from a UUID; only the extension of the client name survives.
func (s *LocalStore) Save(ctx context.Context, ownerID, documentType, filename, contentType string, content []byte) (string, error) {
	if s.maxSize > 0 && int64(len(content)) > s.maxSize {
		return "", domainerrors.BadRequest("File too large")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%s_%s%s", documentType, uuid.New().String(), ext)
	relPath := filepath.Join(ownerID, name)

	dir := filepath.Join(s.root, ownerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create owner dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, relPath), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return relPath, nil
}

// Open returns the absolute path for a previously saved locator. Locators
// escaping the store root are rejected.
func (s *LocalStore) Open(locator string) (string, error) {
	full := filepath.Join(s.root, filepath.Clean("/"+locator))
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", domainerrors.BadRequest("Invalid document path")
	}
	if _, err := os.Stat(full); err != nil {
		return "", domainerrors.NotFound("Document not found")
	}
	return full, nil
}
